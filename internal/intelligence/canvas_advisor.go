package intelligence

import (
	"context"

	"github.com/alexanderramin/compass/internal/domain"
	"github.com/alexanderramin/compass/internal/llm"
	"go.uber.org/zap"
)

// CanvasAdvisor reviews Business Model Canvases.
type CanvasAdvisor interface {
	// AnalyzeCanvas lists strengths, weaknesses, opportunities and threats across blocks.
	AnalyzeCanvas(ctx context.Context, canvas *domain.Canvas) Result[[]CanvasInsight]

	// BlockSuggestions proposes entries for a single block.
	BlockSuggestions(ctx context.Context, canvas *domain.Canvas, block domain.CanvasBlock) Result[BlockSuggestion]
}

type canvasAdvisor struct {
	engine
}

// NewCanvasAdvisor creates a CanvasAdvisor backed by an LLM client.
func NewCanvasAdvisor(client llm.LLMClient, observer llm.Observer, log *zap.Logger) CanvasAdvisor {
	return &canvasAdvisor{engine: newEngine(client, observer, log)}
}

func (a *canvasAdvisor) AnalyzeCanvas(ctx context.Context, canvas *domain.Canvas) Result[[]CanvasInsight] {
	return run(ctx, a.engine, advisory[[]CanvasInsight]{
		task:     llm.TaskCanvas,
		system:   canvasSystemPrompt,
		prompt:   BuildCanvasPrompt(canvas),
		shape:    llm.ShapeArray,
		fallback: func() []CanvasInsight { return FallbackCanvasInsights(canvas.ID) },
		finalize: func(items *[]CanvasInsight) {
			*items = emptyIfNil(*items)
			for i := range *items {
				it := &(*items)[i]
				it.CanvasID = canvas.ID
				if !domain.IsValidBlock(it.Block) {
					it.Block = domain.BlockValuePropositions
				}
			}
		},
	})
}

func (a *canvasAdvisor) BlockSuggestions(ctx context.Context, canvas *domain.Canvas, block domain.CanvasBlock) Result[BlockSuggestion] {
	var p promptBuilder
	p.line("%s", BuildCanvasPrompt(canvas))
	p.section("Block to improve")
	p.field("Block", domain.BlockLabels[block])

	return run(ctx, a.engine, advisory[BlockSuggestion]{
		task:     llm.TaskCanvas,
		system:   blockSystemPrompt,
		prompt:   p.String(),
		shape:    llm.ShapeObject,
		fallback: func() BlockSuggestion { return FallbackBlockSuggestion(canvas.ID, block) },
		finalize: func(s *BlockSuggestion) {
			s.CanvasID = canvas.ID
			s.Block = block
			s.Suggestions = emptyIfNil(s.Suggestions)
			s.Questions = emptyIfNil(s.Questions)
		},
	})
}

// BuildCanvasPrompt renders all nine blocks in canvas reading order.
func BuildCanvasPrompt(c *domain.Canvas) string {
	var p promptBuilder
	p.section("Business model")
	p.field("Name", c.Name)
	p.field("Description", c.Description)
	for _, b := range domain.CanvasBlocks {
		p.section(domain.BlockLabels[b] + " (" + string(b) + ")")
		p.list(c.Blocks[b])
	}
	return p.String()
}

const canvasSystemPrompt = `You are a business model strategist.
You will receive a Business Model Canvas with its nine blocks. Find the most important
strengths, weaknesses, opportunities and threats.

You must output ONLY a JSON array of 3 to 8 objects, each with:
- block: the block key given in parentheses, e.g. "value_propositions"
- type: one of "strength", "weakness", "opportunity", "threat"
- title: short headline
- description: 1-2 sentences
- priority: one of "high", "medium", "low"
- recommendation: the concrete next step

Output ONLY the JSON array, no markdown, no explanation.`

const blockSystemPrompt = `You are a business model strategist.
You will receive a Business Model Canvas and the block to improve.

You must output ONLY a JSON object with these fields:
- suggestions: array of 3 to 5 concrete entries to add to the block
- questions: array of questions the team should answer about the block
- rationale: 1-2 sentences on why these suggestions fit the rest of the canvas

Output ONLY the JSON object, no markdown, no explanation.`
