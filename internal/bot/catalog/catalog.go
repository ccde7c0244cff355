// Package catalog defines the fixed sets of selectable onboarding values.
// Values double as guild role names so the reconciler can resolve them by
// exact match.
package catalog

// PrimaryRoles lists the selectable primary community roles, in chooser
// order.
var PrimaryRoles = []string{
	"Block Producer",
	"Dapp Developer",
	"Contributor",
	"Zkp Developer",
	"Beginner",
	"MLH",
}

// PrimaryRoleLabels maps a primary role value to its chooser label when the
// two differ.
var PrimaryRoleLabels = map[string]string{
	"MLH": "MLH (Major League Hacking Member)",
}

// SubRoles lists the selectable developer specialties, in chooser order.
var SubRoles = []string{
	"Frontend Developer",
	"Backend Developer",
	"Full-Stack Developer",
	"Blockchain Developer",
	"DevOps Engineer",
	"Smart Contract Developer",
	"Data Scientist / AI Engineer",
	"Cardano SPO",
}

// Ecosystems lists the selectable blockchain ecosystems, in chooser order.
var Ecosystems = []string{
	"Cardano",
	"Ethereum",
	"Solana",
	"Bitcoin",
	"Polygon",
	"Binance Smart Chain",
	"XRP",
	"Avalanche",
}

// HackathonGrant maps one hackathon chooser entry to a guild role and the
// channel it unlocks. Roles and channels are resolved by name at grant time
// so the catalog carries no environment-specific identifiers.
type HackathonGrant struct {
	Label       string
	RoleName    string
	ChannelName string
}

// HackathonGrants lists the requestable hackathon roles, in chooser order.
var HackathonGrants = []HackathonGrant{
	{
		Label:       "AMM Hackathon",
		RoleName:    "AMM Hackathon",
		ChannelName: "amm-hackathon",
	},
	{
		Label:       "MLH (Major League Hacking)",
		RoleName:    "MLH",
		ChannelName: "mlh-hackathon",
	},
}

// PrimaryRoleLabel returns the chooser label for a primary role value.
func PrimaryRoleLabel(value string) string {
	if label, ok := PrimaryRoleLabels[value]; ok {
		return label
	}
	return value
}

// ValidPrimaryRole reports whether value is a catalog primary role.
func ValidPrimaryRole(value string) bool {
	return contains(PrimaryRoles, value)
}

// ValidSubRoles reports whether every value is a catalog sub-role.
func ValidSubRoles(values []string) bool {
	return allIn(SubRoles, values)
}

// ValidEcosystems reports whether every value is a catalog ecosystem.
func ValidEcosystems(values []string) bool {
	return allIn(Ecosystems, values)
}

// HackathonGrantByRole returns the hackathon grant whose role name matches.
func HackathonGrantByRole(roleName string) (HackathonGrant, bool) {
	for _, grant := range HackathonGrants {
		if grant.RoleName == roleName {
			return grant, true
		}
	}
	return HackathonGrant{}, false
}

func contains(set []string, value string) bool {
	for _, entry := range set {
		if entry == value {
			return true
		}
	}
	return false
}

func allIn(set []string, values []string) bool {
	for _, value := range values {
		if !contains(set, value) {
			return false
		}
	}
	return true
}
