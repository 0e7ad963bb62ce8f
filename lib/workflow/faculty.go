package workflow

import (
	"github.com/ValentinKolb/pmkv/lib/db"
	"github.com/ValentinKolb/pmkv/lib/identity"
	"github.com/ValentinKolb/pmkv/lib/store"
)

// AdvisorRequests lists the projects asking the session user to advise them.
func (e *Engine) AdvisorRequests(s *Session) (items []MailboxItem, err error) {
	return e.listMailbox(s, ActAdvisorRequests, MailboxAdvisorRequests)
}

// ApprovalRequests lists the projects waiting for approval by the session user.
func (e *Engine) ApprovalRequests(s *Session) (items []MailboxItem, err error) {
	return e.listMailbox(s, ActApprovalRequests, MailboxApprovalRequests)
}

// Evaluations lists the projects assigned to the session user for evaluation.
func (e *Engine) Evaluations(s *Session) (items []MailboxItem, err error) {
	return e.listMailbox(s, ActEvaluations, MailboxEvaluations)
}

func (e *Engine) listMailbox(s *Session, action Action, name string) (items []MailboxItem, err error) {
	defer e.observe(action, &err)
	if err = e.authorize(s, action); err != nil {
		return nil, err
	}
	me, err := e.self(s)
	if err != nil {
		return nil, err
	}
	return e.mailboxItems(mailbox(me, name)), nil
}

// AdvisedProjects returns the projects the session user advises.
func (e *Engine) AdvisedProjects(s *Session) (infos []ProjectInfo, err error) {
	defer e.observe(ActAdvisedProjects, &err)
	if err = e.authorize(s, ActAdvisedProjects); err != nil {
		return nil, err
	}
	return e.ownProjects(s)
}

// resolveEntry takes entry i of a project id mailbox of the session user. If
// the project is gone the entry is dropped and a lookup error returned.
func (e *Engine) resolveEntry(s *Session, name string, i int) (db.Record, Project, db.Record, error) {
	me, err := e.self(s)
	if err != nil {
		return nil, Project{}, nil, err
	}
	id, err := peekMail(me, name, i)
	if err != nil {
		return nil, Project{}, nil, err
	}
	p, rec, err := e.project(id)
	if err != nil {
		_, _ = popMail(me, name, i)
		log.Infof("dropped stale %s entry %s of %s", name, id, s.ID())
		return nil, Project{}, nil, err
	}
	return me, p, rec, nil
}

// RespondAdvisorRequest resolves advisor request i. Accepting makes the
// session user the advisor of the project and promotes a Faculty to Advisor.
// The lead is notified either way.
func (e *Engine) RespondAdvisorRequest(s *Session, i int, accept bool) (err error) {
	defer e.observe(ActRespondAdvisorRequest, &err)
	if err = e.authorize(s, ActRespondAdvisorRequest); err != nil {
		return err
	}
	me, p, rec, err := e.resolveEntry(s, MailboxAdvisorRequests, i)
	if err != nil {
		return err
	}
	if err = e.requireState(p, AdvisorPending); err != nil {
		_, _ = popMail(me, MailboxAdvisorRequests, i)
		return err
	}
	if _, err = popMail(me, MailboxAdvisorRequests, i); err != nil {
		return err
	}

	if !accept {
		delete(rec, fieldAdvisor)
		e.notify(p, NoticeAdvisorRejected, s.ID())
		log.Infof("project %s: advisor request rejected by %s", p.ID, s.ID())
		return nil
	}

	rec[fieldAdvisor] = s.ID()
	pushMail(me, MailboxProjects, p.ID)
	if s.Login.Role != identity.Advisor {
		if err = identity.SetRole(e.logins, s.Login.Username, identity.Advisor); err != nil {
			return err
		}
		s.Login.Role = identity.Advisor
	}
	e.notify(p, NoticeAdvisorAccepted, s.ID())
	log.Infof("project %s: advisor request accepted by %s", p.ID, s.ID())
	return nil
}

// RespondApprovalRequest resolves approval request i and notifies the lead.
func (e *Engine) RespondApprovalRequest(s *Session, i int, approve bool) (err error) {
	defer e.observe(ActRespondApprovalRequest, &err)
	if err = e.authorize(s, ActRespondApprovalRequest); err != nil {
		return err
	}
	me, p, rec, err := e.resolveEntry(s, MailboxApprovalRequests, i)
	if err != nil {
		return err
	}
	if p.Advisor != s.ID() {
		_, _ = popMail(me, MailboxApprovalRequests, i)
		return store.Validationf("you are not the advisor of project %s", p.ID)
	}
	if _, err = popMail(me, MailboxApprovalRequests, i); err != nil {
		return err
	}

	notice := NoticeApprovalRejected
	if approve {
		rec[fieldApproved] = true
		notice = NoticeApprovalGranted
	}
	e.notify(p, notice, s.ID())
	log.Infof("project %s: %s by %s", p.ID, notice, s.ID())
	return nil
}

// Evaluate resolves evaluation i. A positive evaluation marks the project as
// evaluated, a negative one sends it back to Approved.
func (e *Engine) Evaluate(s *Session, i int, positive bool) (err error) {
	defer e.observe(ActEvaluate, &err)
	if err = e.authorize(s, ActEvaluate); err != nil {
		return err
	}
	me, p, rec, err := e.resolveEntry(s, MailboxEvaluations, i)
	if err != nil {
		return err
	}
	if p.Evaluated {
		_, _ = popMail(me, MailboxEvaluations, i)
		return store.Validationf("project %s is already evaluated", p.ID)
	}
	if _, err = popMail(me, MailboxEvaluations, i); err != nil {
		return err
	}

	notice := NoticeEvaluatedNegative
	if positive {
		rec[fieldEvaluated] = true
		notice = NoticeEvaluatedPositive
	}
	e.notify(p, notice, s.ID())
	log.Infof("project %s: %s by %s", p.ID, notice, s.ID())
	return nil
}
