// Package workflow implements the project lifecycle on top of the tables of a
// db.Database.
//
// People, logins, projects and the evaluation list live in the tables
// "people", "login", "projects" and "documents". The engine keeps no state of
// its own: every action reads and mutates records in place, so saving the
// Database persists the whole workflow.
//
// Lifecycle:
//
//	NoAdvisor -> AdvisorPending -> AdvisorAssigned -> PendingApproval ->
//	Approved -> EvaluationQueued -> PendingEvaluation -> Evaluated
//
// A rejected advisor request returns the project to NoAdvisor, a rejected
// approval to AdvisorAssigned and a negative evaluation to Approved. The
// state is derived from the project fields and the mailboxes referencing the
// project. Actions called out of order fail with a ValidationFailure.
//
// Mailboxes:
//
//	Requests travel through list fields of person records (invs, adv_reqs,
//	apr_reqs, eval_projs, msgs). Resolving entry i removes it by moving the
//	last entry into slot i, so entries behind i can change their index.
//	Entries whose project was deleted are dropped when resolved.
//
// Roles:
//
//	Each identity.Role has a fixed set of actions (see Actions). The role is
//	re-read from the login table on every call, so promotions such as
//	Faculty to Advisor apply to open sessions.
package workflow
