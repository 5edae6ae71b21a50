// Package domain contains the core types shared across the CareerLens
// clustering and evaluation services.
package domain

// FeatureSchema declares the ordered feature columns a trained model set
// expects. Numerical columns come first, categorical columns after, and
// the combined order defines the feature vector layout.
type FeatureSchema struct {
	Numerical   []string `json:"numerical"`
	Categorical []string `json:"categorical"`
}

// Columns returns all feature columns in vector order.
func (s FeatureSchema) Columns() []string {
	out := make([]string, 0, len(s.Numerical)+len(s.Categorical))
	out = append(out, s.Numerical...)
	out = append(out, s.Categorical...)
	return out
}

// Width returns the feature vector width.
func (s FeatureSchema) Width() int {
	return len(s.Numerical) + len(s.Categorical)
}

// IsNumerical reports whether the named column is a numerical feature.
func (s FeatureSchema) IsNumerical(name string) bool {
	for _, c := range s.Numerical {
		if c == name {
			return true
		}
	}
	return false
}

// CategoricalEncoding maps raw category strings to fitted ordinal codes.
// Unseen categories fall back to Fallback when UseFallback is set;
// otherwise they are assigned first-seen ad hoc codes starting after the
// largest fitted code.
type CategoricalEncoding struct {
	Codes       map[string]int `json:"codes"`
	Fallback    int            `json:"fallback"`
	UseFallback bool           `json:"use_fallback"`
}

// MaxCode returns the largest fitted code, or -1 when no codes are fitted.
func (e CategoricalEncoding) MaxCode() int {
	maxCode := -1
	for _, c := range e.Codes {
		if c > maxCode {
			maxCode = c
		}
	}
	return maxCode
}

// ScalingParameters holds per-column standardization parameters in
// schema column order (numerical then categorical).
type ScalingParameters struct {
	Center []float64 `json:"center"`
	Scale  []float64 `json:"scale"`
}

// ClusterProfile describes a cluster's human-facing interpretation.
type ClusterProfile struct {
	Name        string   `json:"name"`
	Roles       []string `json:"roles"`
	Description string   `json:"description,omitempty"`
}

// Prediction is the outcome of assigning one student record to a cluster.
type Prediction struct {
	ClusterID      int      `json:"cluster_id"`
	ProfileName    string   `json:"profile_name"`
	SuggestedRoles []string `json:"suggested_roles"`
	Description    string   `json:"description,omitempty"`
}

// EngineeredScores are derived aptitude indicators computed from an
// individual submission. They enrich the individual prediction response.
type EngineeredScores struct {
	Extracurricular  float64 `json:"extracurricular_score"`
	Creativity       float64 `json:"creativity_score"`
	Analytics        float64 `json:"analytics_score"`
	BusinessInterest float64 `json:"business_interest"`
	ResearchInterest float64 `json:"research_interest"`
}

// BatchSummary aggregates a batch prediction run.
type BatchSummary struct {
	Rows         int            `json:"rows"`
	Distribution map[string]int `json:"distribution"`
	Embedding    string         `json:"embedding"`
}

// ConfusionRow holds the predicted-label tallies for one truth label.
// Predicted labels are reported in their original form; matching is done
// on normalized labels.
type ConfusionRow struct {
	TruthLabel string         `json:"truth_label"`
	Total      int            `json:"total"`
	Predicted  map[string]int `json:"predicted"`
}

// Alignment modes for pairing predicted and truth tables.
const (
	AlignmentKey        = "key"
	AlignmentPositional = "positional"
)

// ComparisonReport is the result of evaluating predicted labels against
// ground truth.
type ComparisonReport struct {
	ID               string             `json:"id"`
	Accuracy         float64            `json:"accuracy"`
	Correct          int                `json:"correct"`
	Total            int                `json:"total"`
	Alignment        string             `json:"alignment"`
	KeyColumn        string             `json:"key_column,omitempty"`
	PredictedColumn  string             `json:"predicted_column"`
	TruthColumn      string             `json:"truth_column"`
	UnmatchedPred    int                `json:"unmatched_predicted"`
	UnmatchedTruth   int                `json:"unmatched_truth"`
	Labels           []string           `json:"labels"`
	Confusion        []ConfusionRow     `json:"confusion"`
	PerLabelAccuracy map[string]float64 `json:"per_label_accuracy"`
}
