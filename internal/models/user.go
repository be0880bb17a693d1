package models

import (
	"strconv"
	"strings"
	"time"
)

// User is the per-account profile document stored in the "users" collection,
// keyed by the authentication subject id.
type User struct {
	ID                string            `json:"id" firestore:"id" bson:"id"`
	Name              *string           `json:"name" firestore:"name" bson:"name"`
	Email             string            `json:"email" firestore:"email" bson:"email"`
	PhoneNumber       string            `json:"phoneNumber" firestore:"phoneNumber" bson:"phoneNumber"`
	DateOfBirth       string            `json:"dateOfBirth" firestore:"dateOfBirth" bson:"dateOfBirth"` // "YYYY-M-D", not zero-padded
	Address           map[string]string `json:"address" firestore:"address" bson:"address"`
	Interests         []string          `json:"interests" firestore:"interests" bson:"interests"`
	ProfilePictureURL string            `json:"profilePictureUrl" firestore:"profilePictureUrl" bson:"profilePictureUrl"`
}

// AddressFields is the canonical field order for rendering an address as a
// single line. The input path only ever produces exactly these three keys.
var AddressFields = []string{"city", "street", "postcode"}

// UserFromMap decodes an untyped document into a User. It never fails: a
// missing key or a value of the wrong runtime type falls back to the field's
// default. Address entries and interest elements are filtered individually,
// so one malformed entry does not discard the rest.
func UserFromMap(data map[string]interface{}) *User {
	u := &User{
		ID:                stringField(data, "id"),
		Email:             stringField(data, "email"),
		PhoneNumber:       stringField(data, "phoneNumber"),
		DateOfBirth:       stringField(data, "dateOfBirth"),
		ProfilePictureURL: stringField(data, "profilePictureUrl"),
		Address:           map[string]string{},
		Interests:         []string{},
	}

	if s, ok := data["name"].(string); ok {
		u.Name = &s
	}

	switch addr := data["address"].(type) {
	case map[string]string:
		for k, v := range addr {
			u.Address[k] = v
		}
	case map[string]interface{}:
		for k, v := range addr {
			if s, ok := v.(string); ok {
				u.Address[k] = s
			}
		}
	}

	switch ints := data["interests"].(type) {
	case []string:
		u.Interests = append(u.Interests, ints...)
	case []interface{}:
		for _, v := range ints {
			if s, ok := v.(string); ok {
				u.Interests = append(u.Interests, s)
			}
		}
	}

	return u
}

func stringField(data map[string]interface{}, key string) string {
	s, _ := data[key].(string)
	return s
}

// Document encodes the full field set for a whole-document write.
func (u *User) Document() map[string]interface{} {
	var name interface{}
	if u.Name != nil {
		name = *u.Name
	}
	return map[string]interface{}{
		"id":                u.ID,
		"name":              name,
		"email":             u.Email,
		"phoneNumber":       u.PhoneNumber,
		"dateOfBirth":       u.DateOfBirth,
		"address":           u.Address,
		"interests":         u.Interests,
		"profilePictureUrl": u.ProfilePictureURL,
	}
}

// ParseAddress splits a free-text address on commas. Exactly three trimmed
// parts map positionally to city, street, postcode; anything else collapses
// to an empty address.
func ParseAddress(s string) map[string]string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) != 3 {
		return map[string]string{}
	}
	return map[string]string{
		"city":     parts[0],
		"street":   parts[1],
		"postcode": parts[2],
	}
}

// JoinAddress renders an address map as a single comma-joined line in
// canonical field order.
func JoinAddress(addr map[string]string) string {
	values := make([]string, 0, len(AddressFields))
	for _, field := range AddressFields {
		if v, ok := addr[field]; ok {
			values = append(values, v)
		}
	}
	return strings.Join(values, ", ")
}

// ParseInterests splits a comma-separated list, trimming each entry. Empty
// strings and duplicates are kept as-is.
func ParseInterests(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.TrimSpace(p)
	}
	return out
}

// JoinInterests renders interests as a comma-joined line.
func JoinInterests(interests []string) string {
	return strings.Join(interests, ", ")
}

// Age derives the current age from a "YYYY-M-D" date of birth.
func Age(dateOfBirth string) int {
	return AgeAt(dateOfBirth, time.Now())
}

// AgeAt computes the age as of the given day. A date that does not split
// into exactly three numeric parts yields 0, never an error. A birthday
// falling exactly on the given day counts as already occurred.
func AgeAt(dateOfBirth string, now time.Time) int {
	parts := strings.Split(dateOfBirth, "-")
	if len(parts) != 3 {
		return 0
	}

	birthYear, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	birthMonth, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	birthDay, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0
	}

	age := now.Year() - birthYear
	if int(now.Month()) < birthMonth ||
		(int(now.Month()) == birthMonth && now.Day() < birthDay) {
		age--
	}
	return age
}
