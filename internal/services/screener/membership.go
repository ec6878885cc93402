package screener

import (
	"github.com/pkg/errors"

	"github.com/vadiminshakov/geflip/internal/domain"
)

// Membership restricts opportunities by members-only status.
type Membership string

const (
	MembershipAll     Membership = "all"
	MembershipMembers Membership = "members"
	MembershipF2P     Membership = "f2p"
)

// ParseMembership parses a membership filter; empty means all.
func ParseMembership(s string) (Membership, error) {
	switch m := Membership(s); m {
	case "":
		return MembershipAll, nil
	case MembershipAll, MembershipMembers, MembershipF2P:
		return m, nil
	}
	return "", errors.Errorf("unknown membership filter %q", s)
}

// FilterMembership keeps opportunities matching m.
func FilterMembership(opportunities []domain.TradeOpportunity, m Membership) []domain.TradeOpportunity {
	if m == MembershipAll || m == "" {
		return opportunities
	}
	filtered := make([]domain.TradeOpportunity, 0, len(opportunities))
	for _, opp := range opportunities {
		if opp.Members == (m == MembershipMembers) {
			filtered = append(filtered, opp)
		}
	}
	return filtered
}
