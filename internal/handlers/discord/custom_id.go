package discord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PeterMay/NeverwinterNights-EPiC-Arena/internal/domain/shared"
)

// Custom ID format: "context:action:data"
const (
	customIDContext = "arena"
	actionCell      = "cell"
	actionRest      = "rest"
)

// CellCustomID is the button ID for moving to or attacking p
func CellCustomID(p shared.Point) string {
	return fmt.Sprintf("%s:%s:%d:%d", customIDContext, actionCell, p.X, p.Y)
}

// RestCustomID is the button ID for resting
func RestCustomID() string {
	return customIDContext + ":" + actionRest
}

// componentAction is a parsed button press
type componentAction struct {
	Action string
	Point  shared.Point
}

func parseCustomID(customID string) (componentAction, bool) {
	parts := strings.Split(customID, ":")
	if len(parts) < 2 || parts[0] != customIDContext {
		return componentAction{}, false
	}

	switch parts[1] {
	case actionRest:
		return componentAction{Action: actionRest}, true
	case actionCell:
		if len(parts) != 4 {
			return componentAction{}, false
		}
		x, errX := strconv.Atoi(parts[2])
		y, errY := strconv.Atoi(parts[3])
		if errX != nil || errY != nil {
			return componentAction{}, false
		}
		return componentAction{Action: actionCell, Point: shared.Pt(x, y)}, true
	default:
		return componentAction{}, false
	}
}
