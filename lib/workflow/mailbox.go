package workflow

import (
	"github.com/ValentinKolb/pmkv/lib/db"
	"github.com/ValentinKolb/pmkv/lib/store"
)

// removeAt removes the element at index i by moving the last element into
// its slot. Elements before i keep their index, the order after i does not
// survive. Mailboxes carry no priority so O(1) removal is enough.
func removeAt[T any](list []T, i int) ([]T, T, error) {
	var zero T
	if i < 0 || i >= len(list) {
		return list, zero, store.Lookupf("index %d out of range (%d entries)", i, len(list))
	}
	removed := list[i]
	last := len(list) - 1
	list[i] = list[last]
	list[last] = zero
	return list[:last], removed, nil
}

// mailbox returns the list stored in field name of a person record
func mailbox(rec db.Record, name string) []any {
	list, _ := rec[name].([]any)
	return list
}

func pushMail(rec db.Record, name string, v any) {
	rec[name] = append(mailbox(rec, name), v)
}

// popMail removes entry i of mailbox name
func popMail(rec db.Record, name string, i int) (any, error) {
	list, v, err := removeAt(mailbox(rec, name), i)
	if err != nil {
		return nil, err
	}
	rec[name] = list
	return v, nil
}

// peekMail returns entry i of mailbox name as project id
func peekMail(rec db.Record, name string, i int) (string, error) {
	return peekList(mailbox(rec, name), name, i)
}

func peekList(list []any, name string, i int) (string, error) {
	if i < 0 || i >= len(list) {
		return "", store.Lookupf("%s: index %d out of range (%d entries)", name, i, len(list))
	}
	id, ok := list[i].(string)
	if !ok {
		return "", store.Validationf("entry %d of %s is %T, not a project id", i, name, list[i])
	}
	return id, nil
}

// removeValue removes the first occurrence of s from mailbox name
func removeValue(rec db.Record, name string, s string) {
	for i, v := range mailbox(rec, name) {
		if v == s {
			_, _ = popMail(rec, name, i)
			return
		}
	}
}

func containsString(list []any, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
