package routing

import (
	"github.com/google/uuid"

	"github.com/possuite/backend/internal/domain/hardware"
)

// ResolutionReason explains why a resolution produced the devices it did.
// Empty results carry a reason code instead of an error so configuration
// gaps stay distinguishable in logs and operator views.
type ResolutionReason string

const (
	// ReasonRouted means at least one device was resolved
	ReasonRouted ResolutionReason = "ROUTED"
	// ReasonNoPrintClass means the menu item has no print class
	ReasonNoPrintClass ResolutionReason = "NO_PRINT_CLASS"
	// ReasonNoRoute means no routing row exists at any tier
	ReasonNoRoute ResolutionReason = "NO_ROUTE"
	// ReasonNoActiveDevices means routes matched but every linked device
	// is inactive
	ReasonNoActiveDevices ResolutionReason = "NO_ACTIVE_DEVICES"
)

// Resolution is the outcome of resolving a menu item against a revenue
// center: the concrete physical targets, in link order.
type Resolution struct {
	Printers []hardware.Printer
	Displays []hardware.KitchenDisplay
	Reason   ResolutionReason
}

// Empty reports whether the resolution produced no targets
func (r Resolution) Empty() bool {
	return len(r.Printers) == 0 && len(r.Displays) == 0
}

// EmptyResolution builds an empty result with a reason code
func EmptyResolution(reason ResolutionReason) Resolution {
	return Resolution{Reason: reason}
}

// SelectRoutes picks the effective routing rows for a resolution. Rows
// are grouped by scope rank and the lowest non-empty rank wins outright;
// tiers never merge. Given rows at the RVC, property, and global tiers
// simultaneously, only the RVC rows are returned.
func SelectRoutes(routes []PrintClassRoute, rvcID, propertyID uuid.UUID) []PrintClassRoute {
	var best []PrintClassRoute
	bestRank := -1
	for _, route := range routes {
		if !route.Scope.Matches(rvcID, propertyID) {
			continue
		}
		rank := route.Scope.Rank()
		switch {
		case bestRank == -1 || rank < bestRank:
			bestRank = rank
			best = []PrintClassRoute{route}
		case rank == bestRank:
			best = append(best, route)
		}
	}
	return best
}
