package workflow

import (
	"slices"

	"github.com/ValentinKolb/pmkv/lib/identity"
)

// Action names an operation of the engine.
type Action string

const (
	// member
	ActInvitations       Action = "invitations"
	ActRespondInvitation Action = "respond-invitation"
	ActJoinedProjects    Action = "joined-projects"
	ActBecomeLead        Action = "become-lead"

	// lead
	ActCreateProject    Action = "create-project"
	ActProjects         Action = "projects"
	ActRenameProject    Action = "rename-project"
	ActDescribeProject  Action = "describe-project"
	ActDeleteProject    Action = "delete-project"
	ActInviteMember     Action = "invite-member"
	ActRequestAdvisor   Action = "request-advisor"
	ActSubmitApproval   Action = "submit-approval"
	ActSubmitEvaluation Action = "submit-evaluation"
	ActSubmitReport     Action = "submit-report"
	ActBecomeMember     Action = "become-member"

	// faculty and advisor
	ActAdvisorRequests        Action = "advisor-requests"
	ActRespondAdvisorRequest  Action = "respond-advisor-request"
	ActApprovalRequests       Action = "approval-requests"
	ActRespondApprovalRequest Action = "respond-approval-request"
	ActAdvisedProjects        Action = "advised-projects"
	ActEvaluations            Action = "evaluations"
	ActEvaluate               Action = "evaluate"

	// admin
	ActEvaluationQueue Action = "evaluation-queue"
	ActAssignEvaluator Action = "assign-evaluator"
	ActRawAccess       Action = "raw-access"

	// everyone
	ActProjectInfo   Action = "project-info"
	ActMessages      Action = "messages"
	ActDeleteMessage Action = "delete-message"
	ActClearMessages Action = "clear-messages"
	ActSendMessage   Action = "send-message"
)

var everyone = []Action{ActProjectInfo, ActMessages, ActDeleteMessage, ActClearMessages, ActSendMessage}

var facultyActions = []Action{ActAdvisorRequests, ActRespondAdvisorRequest, ActEvaluations, ActEvaluate}

// permissions maps each role to the actions it may perform
var permissions = map[identity.Role][]Action{
	identity.Member: append([]Action{
		ActInvitations, ActRespondInvitation, ActJoinedProjects, ActBecomeLead,
	}, everyone...),
	identity.Lead: append([]Action{
		ActCreateProject, ActProjects, ActRenameProject, ActDescribeProject, ActDeleteProject,
		ActInviteMember, ActRequestAdvisor, ActSubmitApproval, ActSubmitEvaluation,
		ActSubmitReport, ActBecomeMember,
	}, everyone...),
	identity.Faculty: append(slices.Clone(facultyActions), everyone...),
	identity.Advisor: append(append([]Action{
		ActApprovalRequests, ActRespondApprovalRequest, ActAdvisedProjects,
	}, facultyActions...), everyone...),
	identity.Admin: append([]Action{
		ActEvaluationQueue, ActAssignEvaluator, ActRawAccess,
	}, everyone...),
}

// Can reports whether role may perform action.
func Can(role identity.Role, action Action) bool {
	return slices.Contains(permissions[role], action)
}

// Actions returns the actions available to role.
func Actions(role identity.Role) []Action {
	return slices.Clone(permissions[role])
}
