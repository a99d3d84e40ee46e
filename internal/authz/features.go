// Package authz implements the feature-string permission model: a fixed
// catalog of capability identifiers, role bundles assembled from them,
// and the flat membership check used by the request middleware.
package authz

// Feature identifies a single capability in the form verb:resource or
// verb:resource:qualifier. Features are the contract between route
// declarations and the authorization check.
const (
	FeatureCreateUser          = "create:user"
	FeatureCreateSession       = "create:session"
	FeatureReadSession         = "read:session"
	FeatureReadActivationToken = "read:activation_token"

	FeatureReadUserSelf   = "read:user:self"
	FeatureUpdateUserSelf = "update:user:self"
	FeatureReadUser       = "read:user"
	FeatureReadUserList   = "read:user:list"
	FeatureUpdateFeatures = "update:user:features"

	FeatureReadArticleList = "read:article:list"
	FeatureReadArticle     = "read:article"
	FeatureCreateArticle   = "create:article"
	FeatureUpdateArticle   = "update:article"
	FeatureDeleteArticle   = "delete:article"

	FeatureReadTeamMemberList = "read:team_member:list"
	FeatureCreateTeamMember   = "create:team_member"
	FeatureUpdateTeamMember   = "update:team_member"
	FeatureDeleteTeamMember   = "delete:team_member"

	FeatureIsAdmin = "is:admin"
)

// AnonymousBundle is the feature set of unauthenticated callers.
func AnonymousBundle() []string {
	return []string{
		FeatureCreateUser,
		FeatureCreateSession,
		FeatureReadActivationToken,
		FeatureReadArticleList,
		FeatureReadArticle,
		FeatureReadTeamMemberList,
	}
}

// PendingActivationBundle is the only feature a registered but not yet
// activated account carries.
func PendingActivationBundle() []string {
	return []string{FeatureReadActivationToken}
}

// DefaultBundle is the baseline of every activated account.
func DefaultBundle() []string {
	return append(AnonymousBundle(),
		FeatureReadSession,
		FeatureReadUserSelf,
		FeatureUpdateUserSelf,
	)
}

// ManagerBundle extends DefaultBundle with content and user management.
func ManagerBundle() []string {
	return append(DefaultBundle(),
		FeatureReadUser,
		FeatureReadUserList,
		FeatureCreateArticle,
		FeatureUpdateArticle,
		FeatureDeleteArticle,
		FeatureCreateTeamMember,
		FeatureUpdateTeamMember,
		FeatureDeleteTeamMember,
		FeatureUpdateFeatures,
	)
}

// AdminBundle is ManagerBundle plus the administrator marker. The marker
// does not imply anything by itself: every check is literal membership.
func AdminBundle() []string {
	return append(ManagerBundle(), FeatureIsAdmin)
}

// Can reports whether the required feature is literally present in the
// granted set. There is no wildcard or hierarchical matching; an absent
// or empty set never grants anything.
func Can(granted []string, required string) bool {
	if required == "" {
		return false
	}
	for _, f := range granted {
		if f == required {
			return true
		}
	}
	return false
}

// Has reports whether every required feature is present in granted.
func Has(granted []string, required ...string) bool {
	for _, f := range required {
		if !Can(granted, f) {
			return false
		}
	}
	return true
}
