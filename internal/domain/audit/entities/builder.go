package entities

import "encoding/json"

// NewEntry builds an audit entry with the extra payload encoded as JSON
func NewEntry(userID *int64, action string, targetType *string, targetID *int64, extra map[string]any) (*AuditEntry, error) {
	entry := &AuditEntry{
		UserID:     userID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
	}

	if len(extra) > 0 {
		data, err := json.Marshal(extra)
		if err != nil {
			return nil, err
		}
		encoded := string(data)
		entry.ExtraJSON = &encoded
	}

	return entry, nil
}
