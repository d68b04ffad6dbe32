package contribution

// View distinguishes the issue discussion thread from the linked review thread.
type View string

const (
	ViewIssue  View = "Issue"
	ViewReview View = "Review"
)

func (v View) Valid() bool {
	switch v {
	case ViewIssue, ViewReview:
		return true
	}
	return false
}

// Role is a participant's structural relationship to the issue.
type Role string

const (
	RoleIssuer       Role = "Issuer"
	RoleAssignee     Role = "Assignee"
	RoleCollaborator Role = "Collaborator"
	RoleContributor  Role = "Contributor"
)

func (r Role) Valid() bool {
	switch r {
	case RoleIssuer, RoleAssignee, RoleCollaborator, RoleContributor:
		return true
	}
	return false
}

// Kind is the scorable contribution type within a class.
type Kind string

const (
	KindComment       Kind = "Comment"
	KindSpecification Kind = "Specification"
	KindTask          Kind = "Task"
	KindApproval      Kind = "Approval"
	KindRejection     Kind = "Rejection"
	KindCode          Kind = "Code"
)

func (k Kind) Valid() bool {
	switch k {
	case KindComment, KindSpecification, KindTask, KindApproval, KindRejection, KindCode:
		return true
	}
	return false
}

// Class is one member of the closed rubric of contribution classes, a
// (view, role, kind) triple.
type Class string

const (
	IssueIssuerComment       Class = "Issue Issuer Comment"
	IssueAssigneeComment     Class = "Issue Assignee Comment"
	IssueCollaboratorComment Class = "Issue Collaborator Comment"
	IssueContributorComment  Class = "Issue Contributor Comment"

	IssueIssuerSpecification Class = "Issue Issuer Specification"
	IssueAssigneeTask        Class = "Issue Assignee Task"

	ReviewIssuerComment       Class = "Review Issuer Comment"
	ReviewAssigneeComment     Class = "Review Assignee Comment"
	ReviewCollaboratorComment Class = "Review Collaborator Comment"
	ReviewContributorComment  Class = "Review Contributor Comment"

	ReviewIssuerApproval        Class = "Review Issuer Approval"
	ReviewIssuerRejection       Class = "Review Issuer Rejection"
	ReviewCollaboratorApproval  Class = "Review Collaborator Approval"
	ReviewCollaboratorRejection Class = "Review Collaborator Rejection"

	ReviewIssuerCode       Class = "Review Issuer Code"
	ReviewAssigneeCode     Class = "Review Assignee Code"
	ReviewCollaboratorCode Class = "Review Collaborator Code"
)

type classInfo struct {
	view View
	role Role
	kind Kind
}

// classTable is the single source of truth for the rubric. Order in Classes()
// follows declaration order above.
var classTable = map[Class]classInfo{
	IssueIssuerComment:       {ViewIssue, RoleIssuer, KindComment},
	IssueAssigneeComment:     {ViewIssue, RoleAssignee, KindComment},
	IssueCollaboratorComment: {ViewIssue, RoleCollaborator, KindComment},
	IssueContributorComment:  {ViewIssue, RoleContributor, KindComment},

	IssueIssuerSpecification: {ViewIssue, RoleIssuer, KindSpecification},
	IssueAssigneeTask:        {ViewIssue, RoleAssignee, KindTask},

	ReviewIssuerComment:       {ViewReview, RoleIssuer, KindComment},
	ReviewAssigneeComment:     {ViewReview, RoleAssignee, KindComment},
	ReviewCollaboratorComment: {ViewReview, RoleCollaborator, KindComment},
	ReviewContributorComment:  {ViewReview, RoleContributor, KindComment},

	ReviewIssuerApproval:        {ViewReview, RoleIssuer, KindApproval},
	ReviewIssuerRejection:       {ViewReview, RoleIssuer, KindRejection},
	ReviewCollaboratorApproval:  {ViewReview, RoleCollaborator, KindApproval},
	ReviewCollaboratorRejection: {ViewReview, RoleCollaborator, KindRejection},

	ReviewIssuerCode:       {ViewReview, RoleIssuer, KindCode},
	ReviewAssigneeCode:     {ViewReview, RoleAssignee, KindCode},
	ReviewCollaboratorCode: {ViewReview, RoleCollaborator, KindCode},
}

var classOrder = []Class{
	IssueIssuerComment,
	IssueAssigneeComment,
	IssueCollaboratorComment,
	IssueContributorComment,
	IssueIssuerSpecification,
	IssueAssigneeTask,
	ReviewIssuerComment,
	ReviewAssigneeComment,
	ReviewCollaboratorComment,
	ReviewContributorComment,
	ReviewIssuerApproval,
	ReviewIssuerRejection,
	ReviewCollaboratorApproval,
	ReviewCollaboratorRejection,
	ReviewIssuerCode,
	ReviewAssigneeCode,
	ReviewCollaboratorCode,
}

// Classes returns every contribution class in fixed declaration order.
func Classes() []Class {
	return append([]Class(nil), classOrder...)
}

func (c Class) Valid() bool {
	_, ok := classTable[c]
	return ok
}

func (c Class) View() View { return classTable[c].view }
func (c Class) Role() Role { return classTable[c].role }
func (c Class) Kind() Kind { return classTable[c].kind }
