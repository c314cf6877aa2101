package model

import "time"

// Config is the root configuration. It is passed explicitly into every
// component constructor; nothing in the core reads ambient global state,
// so concurrent analysis runs with different configurations do not
// interfere.
type Config struct {
	Scoring     ScoringConfig     `yaml:"scoring" mapstructure:"scoring"`
	Retrieval   RetrievalConfig   `yaml:"retrieval" mapstructure:"retrieval"`
	Extraction  ExtractionConfig  `yaml:"extraction" mapstructure:"extraction"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// ScoringConfig holds every tunable of the scoring pipeline. All values
// are floats in [0,1]; the risk weights are recommended (not enforced)
// to sum to 1.
type ScoringConfig struct {
	SimilarityThreshold       float64 `yaml:"similarity_threshold" mapstructure:"similarity_threshold"`
	StrongSimilarityThreshold float64 `yaml:"strong_similarity_threshold" mapstructure:"strong_similarity_threshold"`
	WeakSupportWeight         float64 `yaml:"weak_support_weight" mapstructure:"weak_support_weight"`

	NoEvidencePenalty    float64 `yaml:"no_evidence_penalty" mapstructure:"no_evidence_penalty"`
	ContradictionPenalty float64 `yaml:"contradiction_penalty" mapstructure:"contradiction_penalty"`
	WeakEvidencePenalty  float64 `yaml:"weak_evidence_penalty" mapstructure:"weak_evidence_penalty"`
	VagueLanguagePenalty float64 `yaml:"vague_language_penalty" mapstructure:"vague_language_penalty"`

	HallucinationThreshold float64 `yaml:"hallucination_threshold" mapstructure:"hallucination_threshold"`
	GroundedThreshold      float64 `yaml:"grounded_threshold" mapstructure:"grounded_threshold"`
	RiskConfidenceWeight   float64 `yaml:"risk_confidence_weight" mapstructure:"risk_confidence_weight"`
	RiskEvidenceWeight     float64 `yaml:"risk_evidence_weight" mapstructure:"risk_evidence_weight"`

	DefaultRawConfidence float64 `yaml:"default_raw_confidence" mapstructure:"default_raw_confidence"`
}

// RetrievalConfig configures the local evidence corpus
type RetrievalConfig struct {
	DBPath       string `yaml:"db_path" mapstructure:"db_path"`
	ChunkSize    int    `yaml:"chunk_size" mapstructure:"chunk_size"`
	ChunkOverlap int    `yaml:"chunk_overlap" mapstructure:"chunk_overlap"`
	TopK         int    `yaml:"top_k" mapstructure:"top_k"`
}

// ExtractionConfig configures claim extraction
type ExtractionConfig struct {
	MaxClaims      int `yaml:"max_claims" mapstructure:"max_claims"`
	MinClaimLength int `yaml:"min_claim_length" mapstructure:"min_claim_length"`
	MaxRetries     int `yaml:"max_retries" mapstructure:"max_retries"`
}

// LLMConfig holds LLM provider configuration
type LLMConfig struct {
	Provider  string  `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama, "" = heuristic only
	Model     string  `yaml:"model" mapstructure:"model"`
	APIKey    string  `yaml:"api_key,omitempty" mapstructure:"api_key"`
	BaseURL   string  `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout   int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	RateLimit float64 `yaml:"rate_limit" mapstructure:"rate_limit"` // requests per second, 0 = unlimited
}

// HTTPConfig configures outbound HTTP for corpus URL ingestion
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CacheConfig configures retrieval result caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig configures parallelism
type ConcurrencyConfig struct {
	ClaimWorkers int `yaml:"claim_workers" mapstructure:"claim_workers"` // Per-claim fan-out within one analysis
	BatchWorkers int `yaml:"batch_workers" mapstructure:"batch_workers"` // Parallel answers in batch mode
}

// OutputConfig configures report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			SimilarityThreshold:       0.3,
			StrongSimilarityThreshold: 0.7,
			WeakSupportWeight:         0.5,
			NoEvidencePenalty:         0.40,
			ContradictionPenalty:      0.60,
			WeakEvidencePenalty:       0.15,
			VagueLanguagePenalty:      0.20,
			HallucinationThreshold:    0.3,
			GroundedThreshold:         0.7,
			RiskConfidenceWeight:      0.4,
			RiskEvidenceWeight:        0.6,
			DefaultRawConfidence:      0.5,
		},
		Retrieval: RetrievalConfig{
			DBPath:       ".claimlens/corpus",
			ChunkSize:    512,
			ChunkOverlap: 64,
			TopK:         5,
		},
		Extraction: ExtractionConfig{
			MaxClaims:      50,
			MinClaimLength: 10,
			MaxRetries:     3,
		},
		LLM: LLMConfig{
			Provider:  "",
			Model:     "",
			Timeout:   30,
			MaxTokens: 4096,
			RateLimit: 2,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Claimlens/0.1 (+https://github.com/ekurganov/claimlens)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".claimlens/cache",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			ClaimWorkers: 8,
			BatchWorkers: 4,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
	}
}

// Validate checks every scoring option at configuration-load time.
// Analysis never starts with an out-of-range option; this is the only
// fatal error class in the system.
func (c *Config) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"similarity_threshold", c.Scoring.SimilarityThreshold},
		{"strong_similarity_threshold", c.Scoring.StrongSimilarityThreshold},
		{"weak_support_weight", c.Scoring.WeakSupportWeight},
		{"no_evidence_penalty", c.Scoring.NoEvidencePenalty},
		{"contradiction_penalty", c.Scoring.ContradictionPenalty},
		{"weak_evidence_penalty", c.Scoring.WeakEvidencePenalty},
		{"vague_language_penalty", c.Scoring.VagueLanguagePenalty},
		{"hallucination_threshold", c.Scoring.HallucinationThreshold},
		{"grounded_threshold", c.Scoring.GroundedThreshold},
		{"risk_confidence_weight", c.Scoring.RiskConfidenceWeight},
		{"risk_evidence_weight", c.Scoring.RiskEvidenceWeight},
		{"default_raw_confidence", c.Scoring.DefaultRawConfidence},
	}

	for _, check := range checks {
		if check.value < 0 || check.value > 1 {
			return &ConfigurationRangeError{Option: check.name, Value: check.value}
		}
	}
	return nil
}
