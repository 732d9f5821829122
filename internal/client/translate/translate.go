// Package translate maps entities between the local/application shape
// (camelCase fields, Go types) and the remote schema shape (snake_case
// columns, primitive values). Mapping is pure and tolerant: a missing or
// mistyped remote value is treated as absent, never as a failure.
package translate

import (
	"encoding/json"
	"time"

	"github.com/mkazhan/teamkeeper/internal/client/models"
	"github.com/mkazhan/teamkeeper/internal/remote"
)

// TeamToRow converts a local team to a full remote row.
func TeamToRow(t models.Team) remote.Row {
	row := remote.Row{
		"id":             t.ID,
		"user_id":        t.UserID,
		"name":           t.Name,
		"admin_contact":  t.AdminContact,
		"logo":           t.Logo,
		"created_at":     t.CreatedAt.UTC(),
		"last_backup_at": nil,
		"is_yearly":      t.IsYearly,
		"is_plus":        t.IsPlus,
	}
	if t.LastBackupAt != nil {
		row["last_backup_at"] = t.LastBackupAt.UTC()
	}
	return row
}

// TeamFromRow converts a remote row to the local shape. Absent or mistyped
// columns leave the corresponding field at its zero value.
func TeamFromRow(r remote.Row) models.Team {
	t := models.Team{
		ID:           str(r, "id"),
		UserID:       str(r, "user_id"),
		Name:         str(r, "name"),
		AdminContact: str(r, "admin_contact"),
		Logo:         str(r, "logo"),
		CreatedAt:    timeVal(r, "created_at"),
		IsYearly:     boolVal(r, "is_yearly"),
		IsPlus:       boolVal(r, "is_plus"),
	}
	if lb, ok := timeOk(r, "last_backup_at"); ok {
		t.LastBackupAt = &lb
	}
	return t
}

// MemberToRow converts a local member to a full remote row. The tag list is
// carried as a JSON-encoded string column.
func MemberToRow(m models.Member) remote.Row {
	return remote.Row{
		"id":              m.ID,
		"team_id":         m.TeamID,
		"user_id":         m.UserID,
		"email":           m.Email,
		"phone":           m.Phone,
		"telegram":        m.Telegram,
		"two_factor_code": m.TwoFactorCode,
		"password":        m.Password,
		"credential_one":  m.CredentialOne,
		"credential_two":  m.CredentialTwo,
		"joined_at":       m.JoinedAt.UTC(),
		"paid":            m.Paid,
		"paid_amount":     m.PaidAmount,
		"due_amount":      m.DueAmount,
		"tags":            models.EncodeTags(m.Tags),
		"pushed":          m.Pushed,
		"active_team_id":  m.ActiveTeamID,
	}
}

// MemberFromRow converts a remote row to the local shape.
func MemberFromRow(r remote.Row) models.Member {
	return models.Member{
		ID:            str(r, "id"),
		TeamID:        str(r, "team_id"),
		UserID:        str(r, "user_id"),
		Email:         str(r, "email"),
		Phone:         str(r, "phone"),
		Telegram:      str(r, "telegram"),
		TwoFactorCode: str(r, "two_factor_code"),
		Password:      str(r, "password"),
		CredentialOne: str(r, "credential_one"),
		CredentialTwo: str(r, "credential_two"),
		JoinedAt:      timeVal(r, "joined_at"),
		Paid:          boolVal(r, "paid"),
		PaidAmount:    floatVal(r, "paid_amount"),
		DueAmount:     floatVal(r, "due_amount"),
		Tags:          decodeTags(r["tags"]),
		Pushed:        boolVal(r, "pushed"),
		ActiveTeamID:  str(r, "active_team_id"),
	}
}

// patchColumns maps local patch field names to remote column names per table.
var patchColumns = map[string]map[string]string{
	models.TableTeams: {
		"name":         "name",
		"adminContact": "admin_contact",
		"logo":         "logo",
		"lastBackupAt": "last_backup_at",
		"isYearly":     "is_yearly",
		"isPlus":       "is_plus",
	},
	models.TableMembers: {
		"email":         "email",
		"phone":         "phone",
		"telegram":      "telegram",
		"twoFactorCode": "two_factor_code",
		"password":      "password",
		"credentialOne": "credential_one",
		"credentialTwo": "credential_two",
		"joinedAt":      "joined_at",
		"paid":          "paid",
		"paidAmount":    "paid_amount",
		"dueAmount":     "due_amount",
		"tags":          "tags",
		"pushed":        "pushed",
		"activeTeamId":  "active_team_id",
	},
}

// PatchToRow translates a local-shaped partial payload (the JSON body of an
// update queue entry) into a remote patch. Unknown fields are skipped; an
// unreadable payload yields an empty patch rather than an error, so a bad
// entry can never wedge the queue.
func PatchToRow(table string, payload json.RawMessage) remote.Row {
	columns := patchColumns[table]
	patch := remote.Row{}
	if columns == nil || len(payload) == 0 {
		return patch
	}

	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil {
		return patch
	}

	for name, value := range fields {
		column, ok := columns[name]
		if !ok {
			continue
		}
		switch column {
		case "tags":
			patch[column] = models.EncodeTags(toStrings(value))
		case "joined_at", "last_backup_at":
			if s, ok := value.(string); ok {
				if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
					patch[column] = ts.UTC()
					continue
				}
			}
			patch[column] = value
		default:
			patch[column] = value
		}
	}
	return patch
}

func str(r remote.Row, key string) string {
	s, _ := r[key].(string)
	return s
}

func boolVal(r remote.Row, key string) bool {
	b, _ := r[key].(bool)
	return b
}

func floatVal(r remote.Row, key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}

func timeOk(r remote.Row, key string) (time.Time, bool) {
	switch v := r[key].(type) {
	case time.Time:
		return v.UTC(), true
	case string:
		if ts, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return ts.UTC(), true
		}
	}
	return time.Time{}, false
}

func timeVal(r remote.Row, key string) time.Time {
	ts, _ := timeOk(r, key)
	return ts
}

func decodeTags(v any) []string {
	switch value := v.(type) {
	case string:
		return models.DecodeTags(value)
	case []string:
		if len(value) == 0 {
			return nil
		}
		return append([]string(nil), value...)
	default:
		return nil
	}
}

func toStrings(v any) []string {
	switch value := v.(type) {
	case []string:
		return value
	case []any:
		out := make([]string, 0, len(value))
		for _, item := range value {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
