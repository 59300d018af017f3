package llm

import (
	"maps"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// TaskType identifies the advisory domain an LLM call belongs to.
type TaskType string

const (
	TaskHealth     TaskType = "health"
	TaskBurnRate   TaskType = "burn_rate"
	TaskCapacity   TaskType = "capacity"
	TaskValidation TaskType = "validation"
	TaskCanvas     TaskType = "canvas"
	TaskScorecard  TaskType = "scorecard"
	TaskPorter     TaskType = "porter"
	TaskADKAR      TaskType = "adkar"
)

// AllTasks lists every task type in a stable order.
var AllTasks = []TaskType{
	TaskHealth, TaskBurnRate, TaskCapacity, TaskValidation,
	TaskCanvas, TaskScorecard, TaskPorter, TaskADKAR,
}

// Provider selects the text-generation backend.
type Provider string

const (
	ProviderOllama Provider = "ollama"
	ProviderGemini Provider = "gemini"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TimeoutMs   int     `yaml:"timeout_ms"` // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool                    `yaml:"enabled"`
	LogCalls   bool                    `yaml:"log_calls"`
	Provider   Provider                `yaml:"provider"`
	Endpoint   string                  `yaml:"endpoint"`
	Model      string                  `yaml:"model"`
	APIKey     string                  `yaml:"api_key"`
	TimeoutMs  int                     `yaml:"timeout_ms"`
	MaxRetries int                     `yaml:"max_retries"`
	Tasks      map[TaskType]TaskConfig `yaml:"tasks"`
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default and failed calls are not retried.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		LogCalls:   false,
		Provider:   ProviderOllama,
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.2",
		TimeoutMs:  20000,
		MaxRetries: 0,
		Tasks: map[TaskType]TaskConfig{
			TaskHealth:     {Temperature: 0.3, MaxTokens: 1024},
			TaskBurnRate:   {Temperature: 0.2, MaxTokens: 1024},
			TaskCapacity:   {Temperature: 0.2, MaxTokens: 1024},
			TaskValidation: {Temperature: 0.1, MaxTokens: 1024},
			TaskCanvas:     {Temperature: 0.5, MaxTokens: 2048},
			TaskScorecard:  {Temperature: 0.4, MaxTokens: 2048},
			TaskPorter:     {Temperature: 0.4, MaxTokens: 2048},
			TaskADKAR:      {Temperature: 0.4, MaxTokens: 2048},
		},
	}
}

// ApplyEnv overrides fields from COMPASS_LLM_* environment variables.
// Unset or unparseable values leave the current value in place.
func (c *LLMConfig) ApplyEnv() {
	if v := os.Getenv("COMPASS_LLM_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Enabled = b
		}
	}
	if v := os.Getenv("COMPASS_LLM_LOG_CALLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.LogCalls = b
		}
	}
	if v := os.Getenv("COMPASS_LLM_PROVIDER"); v != "" {
		switch p := Provider(strings.ToLower(v)); p {
		case ProviderOllama, ProviderGemini:
			c.Provider = p
		}
	}
	if v := os.Getenv("COMPASS_LLM_ENDPOINT"); v != "" {
		c.Endpoint = v
	}
	if v := os.Getenv("COMPASS_LLM_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("COMPASS_LLM_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("COMPASS_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.TimeoutMs = n
		}
	}
	if v := os.Getenv("COMPASS_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.MaxRetries = n
		}
	}

	for _, task := range AllTasks {
		c.applyTaskTimeoutEnv(task, "COMPASS_LLM_"+strings.ToUpper(string(task))+"_TIMEOUT_MS")
	}
}

// taskOverride is a tasks entry as written in a config file. Nil fields were
// not set and keep the value already configured.
type taskOverride struct {
	Temperature *float64 `yaml:"temperature"`
	MaxTokens   *int     `yaml:"max_tokens"`
	TimeoutMs   *int     `yaml:"timeout_ms"`
}

// UnmarshalYAML decodes over the current values. Task entries are merged
// field by field, so a file that only sets a task's timeout_ms keeps that
// task's temperature and max_tokens.
func (c *LLMConfig) UnmarshalYAML(value *yaml.Node) error {
	tasks := maps.Clone(c.Tasks)
	c.Tasks = nil

	type plain LLMConfig
	if err := value.Decode((*plain)(c)); err != nil {
		c.Tasks = tasks
		return err
	}

	var file struct {
		Tasks map[TaskType]taskOverride `yaml:"tasks"`
	}
	if err := value.Decode(&file); err != nil {
		return err
	}
	if tasks == nil {
		tasks = map[TaskType]TaskConfig{}
	}
	for task, o := range file.Tasks {
		tc := tasks[task]
		if o.Temperature != nil {
			tc.Temperature = *o.Temperature
		}
		if o.MaxTokens != nil {
			tc.MaxTokens = *o.MaxTokens
		}
		if o.TimeoutMs != nil {
			tc.TimeoutMs = *o.TimeoutMs
		}
		tasks[task] = tc
	}
	c.Tasks = tasks
	return nil
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func (c *LLMConfig) applyTaskTimeoutEnv(task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	if c.Tasks == nil {
		c.Tasks = map[TaskType]TaskConfig{}
	}
	tc := c.Tasks[task]
	tc.TimeoutMs = n
	c.Tasks[task] = tc
}
