package workflow

import (
	"strings"

	"github.com/ValentinKolb/pmkv/lib/store"
)

// Messages returns the message mailbox of the session user.
func (e *Engine) Messages(s *Session) (msgs []Message, err error) {
	defer e.observe(ActMessages, &err)
	if err = e.authorize(s, ActMessages); err != nil {
		return nil, err
	}
	me, err := e.self(s)
	if err != nil {
		return nil, err
	}
	for _, v := range mailbox(me, MailboxMessages) {
		msgs = append(msgs, messageFromValue(v))
	}
	return msgs, nil
}

// DeleteMessage removes message i. The last message takes its place.
func (e *Engine) DeleteMessage(s *Session, i int) (err error) {
	defer e.observe(ActDeleteMessage, &err)
	if err = e.authorize(s, ActDeleteMessage); err != nil {
		return err
	}
	me, err := e.self(s)
	if err != nil {
		return err
	}
	_, err = popMail(me, MailboxMessages, i)
	return err
}

// ClearMessages removes all messages.
func (e *Engine) ClearMessages(s *Session) (err error) {
	defer e.observe(ActClearMessages, &err)
	if err = e.authorize(s, ActClearMessages); err != nil {
		return err
	}
	me, err := e.self(s)
	if err != nil {
		return err
	}
	me[MailboxMessages] = []any{}
	return nil
}

// SendMessage appends a free-form message to the mailbox of recipient, given
// by person id or username.
func (e *Engine) SendMessage(s *Session, recipient, title, content string) (err error) {
	defer e.observe(ActSendMessage, &err)
	if err = e.authorize(s, ActSendMessage); err != nil {
		return err
	}
	if strings.TrimSpace(title) == "" {
		return store.Validationf("message title must not be empty")
	}
	id, rec, err := e.findPerson(recipient)
	if err != nil {
		return err
	}
	pushMail(rec, MailboxMessages, Message{Title: title, Content: content, Sender: s.ID()}.Record())
	log.Infof("message from %s to %s", s.ID(), id)
	return nil
}
