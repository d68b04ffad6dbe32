package contribution

// RoleSets is the RoleClassifier output: the occupants of every role,
// normalized to slices. Membership is structurally exclusive: the issuer is
// removed from Collaborators, and Contributors contains only human commenters
// holding no other role.
type RoleSets struct {
	Issuer        []User
	Assignees     []User
	Collaborators []User
	Contributors  []User
}

// ClassifyRoles partitions the known participants of an issue into roles.
// Assignee entries without an identity are dropped. Contributors are
// deduplicated by user id, first-seen order preserved. Empty sets are valid.
func ClassifyRoles(issue Issue, comments []Comment, collaborators []User) RoleSets {
	issuer := issue.User

	assignees := make([]User, 0, len(issue.Assignees))
	for _, a := range issue.Assignees {
		if a.ID == 0 {
			continue
		}
		assignees = append(assignees, a)
	}

	collabs := make([]User, 0, len(collaborators))
	for _, c := range collaborators {
		if c.ID == 0 || c.ID == issuer.ID {
			continue
		}
		collabs = append(collabs, c)
	}

	roleHolders := map[int64]struct{}{issuer.ID: {}}
	for _, a := range assignees {
		roleHolders[a.ID] = struct{}{}
	}
	for _, c := range collabs {
		roleHolders[c.ID] = struct{}{}
	}

	var contributors []User
	seen := map[int64]struct{}{}
	for _, c := range comments {
		u := c.User
		if !u.IsHuman() {
			continue
		}
		if _, held := roleHolders[u.ID]; held {
			continue
		}
		if _, dup := seen[u.ID]; dup {
			continue
		}
		seen[u.ID] = struct{}{}
		contributors = append(contributors, u)
	}

	return RoleSets{
		Issuer:        []User{issuer},
		Assignees:     assignees,
		Collaborators: collabs,
		Contributors:  contributors,
	}
}

// Occupants returns the users holding the given role.
func (r RoleSets) Occupants(role Role) []User {
	switch role {
	case RoleIssuer:
		return r.Issuer
	case RoleAssignee:
		return r.Assignees
	case RoleCollaborator:
		return r.Collaborators
	case RoleContributor:
		return r.Contributors
	}
	return nil
}

// ByClass resolves every contribution class to its role occupants. Classes
// sharing a role share the same occupant set.
func (r RoleSets) ByClass() map[Class][]User {
	res := make(map[Class][]User, len(classTable))
	for _, class := range Classes() {
		res[class] = r.Occupants(class.Role())
	}
	return res
}

// Holds reports whether the user occupies the given role.
func (r RoleSets) Holds(role Role, userID int64) bool {
	for _, u := range r.Occupants(role) {
		if u.ID == userID {
			return true
		}
	}
	return false
}
