package domain

import (
	"encoding/json"
	"fmt"
)

// EncodeSnapshot serializes a snapshot for storage and for whole-record
// change log entries. Field order is stable because the concrete types
// marshal in declaration order.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode %s snapshot %s: %w", s.Kind(), s.Subject(), err)
	}
	return data, nil
}

// DecodeSnapshot deserializes a stored snapshot by kind.
func DecodeSnapshot(kind SubjectKind, data []byte) (Snapshot, error) {
	var snap Snapshot
	switch kind {
	case SubjectKindRegistrant:
		snap = &RegistrantProfile{}
	case SubjectKindOffering:
		snap = &Offering{}
	default:
		return nil, fmt.Errorf("decode snapshot: %w: %q", ErrUnknownSubjectKind, kind)
	}
	if err := json.Unmarshal(data, snap); err != nil {
		return nil, fmt.Errorf("decode %s snapshot: %w", kind, err)
	}
	return snap, nil
}

// EncodeEntity serializes a canonical entity for storage.
func EncodeEntity(e Entity) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encode %s entity %s: %w", e.EntityKind(), e.EntityHash(), err)
	}
	return data, nil
}

// DecodeEntity deserializes a stored canonical entity by kind.
func DecodeEntity(kind EntityKind, data []byte) (Entity, error) {
	var entity Entity
	switch kind {
	case EntityKindCompany:
		entity = &Company{}
	case EntityKindPerson:
		entity = &Person{}
	case EntityKindPhone:
		entity = &Phone{}
	case EntityKindAddress:
		entity = &Address{}
	default:
		return nil, fmt.Errorf("decode entity: %w: unknown kind %q", ErrInvalidInput, kind)
	}
	if err := json.Unmarshal(data, entity); err != nil {
		return nil, fmt.Errorf("decode %s entity: %w", kind, err)
	}
	return entity, nil
}
