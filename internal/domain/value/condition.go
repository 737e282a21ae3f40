package value

import (
	"github.com/junipr-dev/dealscout/internal/domain"
	"github.com/junipr-dev/dealscout/pkg/errcodes"
)

// Condition is the seller-declared (or classifier-derived) state of an item.
// Unknown deals are excluded from valuation entirely: their profit is
// undefined, not zero.
type Condition string

const (
	ConditionNew         Condition = "new"
	ConditionUsed        Condition = "used"
	ConditionNeedsRepair Condition = "needs_repair"
	ConditionUnknown     Condition = "unknown"
)

func ParseCondition(s string) (Condition, error) {
	switch Condition(s) {
	case ConditionNew, ConditionUsed, ConditionNeedsRepair, ConditionUnknown:
		return Condition(s), nil
	case "":
		return ConditionUnknown, nil
	default:
		return "", domain.NewError(errcodes.InvalidCondition, "condition must be new, used, needs_repair or unknown")
	}
}

func (c Condition) String() string {
	return string(c)
}

// Known reports whether the condition carries valuation signal.
func (c Condition) Known() bool {
	return c != ConditionUnknown && c != ""
}
