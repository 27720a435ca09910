package answer

// MaxAttempts is the number of submissions allowed per problem.
const MaxAttempts = 3

// Kind classifies a verdict.
type Kind string

const (
	KindEmpty      Kind = "empty"
	KindExact      Kind = "exact"
	KindEquivalent Kind = "equivalent"
	KindPartial    Kind = "partial"
	KindIncorrect  Kind = "incorrect"
)

// FeedbackLevel tells the UI how to render a verdict.
type FeedbackLevel string

const (
	FeedbackSuccess FeedbackLevel = "success"
	FeedbackWarning FeedbackLevel = "warning"
	FeedbackError   FeedbackLevel = "error"
	FeedbackInfo    FeedbackLevel = "info"
)

// PartialReason names the near-miss a partial verdict detected.
type PartialReason string

const (
	ReasonNone            PartialReason = ""
	ReasonMissingConstant PartialReason = "missing-constant"
	ReasonSign            PartialReason = "sign"
	ReasonCoefficient     PartialReason = "coefficient"
)

// Verdict is the result of validating one submission.
type Verdict struct {
	IsValid   bool
	IsCorrect bool
	Kind      Kind
	Reason    PartialReason

	// Rule is the equivalence rewrite that matched, if any.
	Rule string

	Message  string
	Feedback FeedbackLevel

	Attempt         int
	MaxAttempts     int
	HasMoreAttempts bool
}
