package workflow

// Names of the top-level tables
const (
	TablePeople    = "people"
	TableLogin     = "login"
	TableProjects  = "projects"
	TableDocuments = "documents"
)

// Namespaces lists every table the engine needs, in creation order.
var Namespaces = []string{TablePeople, TableLogin, TableProjects, TableDocuments}

// EvaluationListKey is the key of the evaluation queue in the documents table.
const EvaluationListKey = "evaluation list"

// Person fields
const (
	fieldPersonID = "ID"
	fieldFirst    = "first"
	fieldLast     = "last"
	fieldType     = "type"
)

// Mailboxes are list fields of a person record
const (
	MailboxProjects         = "projs"      // ids of joined, led or advised projects
	MailboxInvitations      = "invs"       // ids of projects inviting the person
	MailboxAdvisorRequests  = "adv_reqs"   // ids of projects asking for an advisor
	MailboxApprovalRequests = "apr_reqs"   // ids of projects awaiting approval
	MailboxEvaluations      = "eval_projs" // ids of projects assigned for evaluation
	MailboxMessages         = "msgs"       // notices and free-form messages
)

// Project fields
const (
	fieldID        = "id"
	fieldName      = "name"
	fieldDesc      = "desc"
	fieldMembers   = "members"
	fieldAdvisor   = "advisor"
	fieldApproved  = "approved"
	fieldEvaluated = "evaluated"
	fieldReport    = "report"
)

// PendingAdvisor is stored as advisor while an advisor request is outstanding.
const PendingAdvisor = "pending"

// Message fields
const (
	fieldMsgType    = "type"
	fieldMsgAuthor  = "author"
	fieldMsgProject = "project"
	fieldMsgTitle   = "title"
	fieldMsgContent = "content"
	fieldMsgSender  = "sender"
)

// Notice types
const (
	NoticeInvitationAccepted = "inva"
	NoticeAdvisorAccepted    = "adva"
	NoticeAdvisorRejected    = "advr"
	NoticeApprovalGranted    = "apra"
	NoticeApprovalRejected   = "aprr"
	NoticeEvaluatedPositive  = "evla"
	NoticeEvaluatedNegative  = "evlr"
)
