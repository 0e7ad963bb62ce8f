package workflow

import (
	"github.com/ValentinKolb/pmkv/lib/identity"
)

// EvaluationQueue lists the projects waiting for an evaluator.
func (e *Engine) EvaluationQueue(s *Session) (items []MailboxItem, err error) {
	defer e.observe(ActEvaluationQueue, &err)
	if err = e.authorize(s, ActEvaluationQueue); err != nil {
		return nil, err
	}
	return e.mailboxItems(e.evaluationList()), nil
}

// AssignEvaluator moves entry i of the evaluation list into the evaluations
// of a Faculty or Advisor, given by person id or username.
func (e *Engine) AssignEvaluator(s *Session, i int, evaluator string) (err error) {
	defer e.observe(ActAssignEvaluator, &err)
	if err = e.authorize(s, ActAssignEvaluator); err != nil {
		return err
	}

	queue := e.evaluationList()
	id, err := peekList(queue, EvaluationListKey, i)
	if err != nil {
		return err
	}
	if _, _, err = e.project(id); err != nil {
		queue, _, _ = removeAt(queue, i)
		if perr := e.documents.Put(EvaluationListKey, queue); perr != nil {
			log.Errorf("dropping stale evaluation list entry %s failed: %v", id, perr)
		} else {
			log.Infof("dropped stale evaluation list entry %s", id)
		}
		return err
	}
	evaluatorID, rec, err := e.findPersonWithRole(evaluator, identity.Faculty, identity.Advisor)
	if err != nil {
		return err
	}

	queue, _, _ = removeAt(queue, i)
	if err = e.documents.Put(EvaluationListKey, queue); err != nil {
		return err
	}
	pushMail(rec, MailboxEvaluations, id)
	log.Infof("project %s: evaluator %s assigned by %s", id, evaluatorID, s.ID())
	return nil
}
