package paste

import (
	"encoding/json"

	"github.com/WouayNote/umod-copy-paste-cleaner/pkg/errors"
)

// Field names lifted out of the raw entity record.
const (
	fieldTypeID  = "typeId"
	fieldOwnerID = "ownerId"
	fieldLock    = "lock"
	fieldFlags   = "flags"
	fieldItems   = "items"
	flagOn       = "on"
	lockCodeKey  = "code"
)

// Entity is one placed object within a document. Entities have no
// identity beyond their position in the document's collection.
type Entity struct {
	typeID   string
	ownerID  *int64
	lock     *Lock
	flags    map[string]json.RawMessage
	items    []json.RawMessage
	hasItems bool
	extra    map[string]json.RawMessage
}

// Lock is the lock sub-record of an entity. A lock with a code is a
// combination lock; one without is a key lock.
type Lock struct {
	code  *string
	extra map[string]json.RawMessage
}

// TypeID returns the entity's prefab path.
func (e *Entity) TypeID() string { return e.typeID }

// HasOwner reports whether the entity carries an ownerId field at all,
// including the value 0.
func (e *Entity) HasOwner() bool { return e.ownerID != nil }

// OwnerID returns the owner id, or 0 when the field is absent.
func (e *Entity) OwnerID() int64 {
	if e.ownerID == nil {
		return 0
	}
	return *e.ownerID
}

// SetOwnerID overwrites the ownerId field. It is only meaningful on
// entities that already carry the field; callers guard with HasOwner.
func (e *Entity) SetOwnerID(id int64) {
	v := id
	e.ownerID = &v
}

// Lock returns the lock sub-record, or nil when the entity has none.
func (e *Entity) Lock() *Lock { return e.lock }

// RemoveLock deletes the lock sub-record, whatever its kind.
func (e *Entity) RemoveLock() { e.lock = nil }

// IsOn reports whether the entity's flags record is present with on ==
// true. Absence of the record is the off state.
func (e *Entity) IsOn() bool {
	if e.flags == nil {
		return false
	}
	raw, ok := e.flags[flagOn]
	if !ok {
		return false
	}
	var on bool
	if err := json.Unmarshal(raw, &on); err != nil {
		return false
	}
	return on
}

// SwitchOff removes the on-flag record. There is no explicit false
// write; an empty flags object is dropped entirely.
func (e *Entity) SwitchOff() {
	if e.flags == nil {
		return
	}
	delete(e.flags, flagOn)
	if len(e.flags) == 0 {
		e.flags = nil
	}
}

// ItemCount returns the number of items the entity holds.
func (e *Entity) ItemCount() int { return len(e.items) }

// HasItems reports whether the entity carries an items field, even an
// empty one.
func (e *Entity) HasItems() bool { return e.hasItems }

// StripItems empties the entity's item collection, keeping the field.
func (e *Entity) StripItems() {
	if e.hasItems {
		e.items = e.items[:0]
	}
}

// Raw returns the raw JSON value of an unlifted entity field, or nil.
func (e *Entity) Raw(key string) json.RawMessage {
	return e.extra[key]
}

// HasCode reports whether the lock is a combination lock.
func (l *Lock) HasCode() bool { return l != nil && l.code != nil }

// Code returns the combination, or an empty string for key locks.
func (l *Lock) Code() string {
	if l == nil || l.code == nil {
		return ""
	}
	return *l.code
}

// SetCode overwrites the combination of a combination lock. Key locks
// never gain a code; the call is a no-op on them.
func (l *Lock) SetCode(code string) {
	if l == nil || l.code == nil {
		return
	}
	v := code
	l.code = &v
}

// UnmarshalJSON lifts the known fields and stashes the rest.
func (e *Entity) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	typeRaw, ok := raw[fieldTypeID]
	if !ok {
		return errors.New(errors.ErrInputParse, "entity record has no typeId")
	}
	if err := json.Unmarshal(typeRaw, &e.typeID); err != nil {
		return errors.Wrap(err, errors.ErrInputParse, "entity typeId is not a string")
	}
	delete(raw, fieldTypeID)

	if ownerRaw, ok := raw[fieldOwnerID]; ok {
		var owner int64
		if err := json.Unmarshal(ownerRaw, &owner); err != nil {
			return errors.Wrapf(err, errors.ErrInputParse, "entity %q has a non-integer ownerId", e.typeID)
		}
		e.ownerID = &owner
		delete(raw, fieldOwnerID)
	}

	if lockRaw, ok := raw[fieldLock]; ok {
		lock := &Lock{}
		if err := json.Unmarshal(lockRaw, lock); err != nil {
			return errors.Wrapf(err, errors.ErrInputParse, "entity %q has an invalid lock record", e.typeID)
		}
		e.lock = lock
		delete(raw, fieldLock)
	}

	if flagsRaw, ok := raw[fieldFlags]; ok {
		if err := json.Unmarshal(flagsRaw, &e.flags); err != nil {
			return errors.Wrapf(err, errors.ErrInputParse, "entity %q has an invalid flags record", e.typeID)
		}
		delete(raw, fieldFlags)
	}

	if itemsRaw, ok := raw[fieldItems]; ok {
		if err := json.Unmarshal(itemsRaw, &e.items); err != nil {
			return errors.Wrapf(err, errors.ErrInputParse, "entity %q has an invalid items list", e.typeID)
		}
		e.hasItems = true
		delete(raw, fieldItems)
	}

	e.extra = raw
	return nil
}

// MarshalJSON reassembles the record, unknown fields included.
func (e *Entity) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(e.extra)+5)
	for k, v := range e.extra {
		out[k] = v
	}
	out[fieldTypeID] = e.typeID
	if e.ownerID != nil {
		out[fieldOwnerID] = *e.ownerID
	}
	if e.lock != nil {
		out[fieldLock] = e.lock
	}
	if len(e.flags) > 0 {
		out[fieldFlags] = e.flags
	}
	if e.hasItems {
		if e.items == nil {
			e.items = []json.RawMessage{}
		}
		out[fieldItems] = e.items
	}
	return json.Marshal(out)
}

// UnmarshalJSON keeps unknown lock fields alongside the code.
func (l *Lock) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if codeRaw, ok := raw[lockCodeKey]; ok {
		var code string
		if err := json.Unmarshal(codeRaw, &code); err != nil {
			return err
		}
		l.code = &code
		delete(raw, lockCodeKey)
	}
	l.extra = raw
	return nil
}

// MarshalJSON writes the lock back, code first-class, extras preserved.
func (l *Lock) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(l.extra)+1)
	for k, v := range l.extra {
		out[k] = v
	}
	if l.code != nil {
		out[lockCodeKey] = *l.code
	}
	return json.Marshal(out)
}
