package contribution

// commentRolePrecedence documents the dispatch order for comment
// classification. RoleSets membership is already mutually exclusive, so each
// comment matches at most one role.
var commentRolePrecedence = []Role{
	RoleIssuer,
	RoleAssignee,
	RoleCollaborator,
	RoleContributor,
}

// commentClassFor maps (view, role) to the "*Comment" class.
func commentClassFor(view View, role Role) (Class, bool) {
	for _, class := range Classes() {
		if class.Kind() == KindComment && class.View() == view && class.Role() == role {
			return class, true
		}
	}
	return "", false
}

// ClassifyComments partitions comments among the comment-kind classes of the
// active view. Every comment lands in exactly one class, keyed by its
// author's role; comments by unknown authors (possible only if the upstream
// bot filter was skipped) are omitted. Input order is preserved within each
// class.
func ClassifyComments(roles RoleSets, comments []Comment, view View) map[Class][]Comment {
	res := make(map[Class][]Comment)
	for _, class := range Classes() {
		if class.Kind() == KindComment && class.View() == view {
			res[class] = nil
		}
	}

	for _, c := range comments {
		for _, role := range commentRolePrecedence {
			if !roles.Holds(role, c.User.ID) {
				continue
			}
			class, ok := commentClassFor(view, role)
			if ok {
				res[class] = append(res[class], c)
			}
			break
		}
	}
	return res
}
