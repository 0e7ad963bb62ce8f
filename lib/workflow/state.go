package workflow

import "github.com/ValentinKolb/pmkv/lib/db"

// State is the lifecycle state of a project. It is derived from the project
// record and the mailboxes referencing it, never stored.
type State int

const (
	NoAdvisor         State = iota // no advisor requested, or the last request was rejected
	AdvisorPending                 // advisor request outstanding
	AdvisorAssigned                // a faculty accepted to advise
	PendingApproval                // waiting in the advisor's approval requests
	Approved                       // approved by the advisor
	EvaluationQueued               // waiting in the evaluation list for an evaluator
	PendingEvaluation              // assigned to an evaluator
	Evaluated                      // positively evaluated
)

var stateNames = [...]string{
	"NoAdvisor",
	"AdvisorPending",
	"AdvisorAssigned",
	"PendingApproval",
	"Approved",
	"EvaluationQueued",
	"PendingEvaluation",
	"Evaluated",
}

func (s State) String() string {
	if s < NoAdvisor || s > Evaluated {
		return "Unknown"
	}
	return stateNames[s]
}

// state derives the lifecycle state of p
func (e *Engine) state(p Project) State {
	switch {
	case p.Evaluated:
		return Evaluated
	case e.assignedForEvaluation(p.ID):
		return PendingEvaluation
	case containsString(e.evaluationList(), p.ID):
		return EvaluationQueued
	case p.Approved:
		return Approved
	case p.Advisor == PendingAdvisor:
		return AdvisorPending
	case p.Advisor == "":
		return NoAdvisor
	}
	if adv, ok := e.personRecord(p.Advisor); ok && containsString(mailbox(adv, MailboxApprovalRequests), p.ID) {
		return PendingApproval
	}
	return AdvisorAssigned
}

// assignedForEvaluation reports whether some person has id in eval_projs
func (e *Engine) assignedForEvaluation(id string) bool {
	found := false
	e.people.ForEach(func(_ string, v any) bool {
		rec, ok := v.(db.Record)
		found = ok && containsString(mailbox(rec, MailboxEvaluations), id)
		return !found
	})
	return found
}
