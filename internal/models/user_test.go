package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewUserDefaults(t *testing.T) {
	u := NewUser(UserInput{Name: " Ann ", Email: "ann@example.com", LoginID: "ann", Password: "pw"})
	if u.Name != "Ann" {
		t.Errorf("name = %q", u.Name)
	}
	if u.Role != DefaultRole {
		t.Errorf("role = %q, want %q", u.Role, DefaultRole)
	}
	if u.Status != MemberActive {
		t.Errorf("status = %q, want %q", u.Status, MemberActive)
	}
}

func TestUserInputValidate(t *testing.T) {
	valid := UserInput{Name: "Ann", Email: "a@x.io", LoginID: "ann", Password: "pw"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
	for _, field := range []string{"name", "email", "loginId", "password"} {
		in := valid
		switch field {
		case "name":
			in.Name = " "
		case "email":
			in.Email = ""
		case "loginId":
			in.LoginID = ""
		case "password":
			in.Password = ""
		}
		err := in.Validate()
		if !IsCode(err, ErrCodeInvalid) {
			t.Errorf("missing %s: err = %v, want INVALID", field, err)
		}
	}
}

func TestUserPasswordHashNeverSerialized(t *testing.T) {
	data, err := json.Marshal(User{Name: "Ann", PasswordHash: "$2a$10$secret"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "secret") || strings.Contains(string(data), "password") {
		t.Errorf("hash leaked into JSON: %s", data)
	}
}

func TestUserApplyRejectsBlankRequiredFields(t *testing.T) {
	u := User{Name: "Ann", Email: "a@x.io", LoginID: "ann"}
	blank := ""
	if err := u.Apply(UserPatch{Email: &blank}); !IsCode(err, ErrCodeInvalid) {
		t.Errorf("blank email: err = %v", err)
	}
	role := "Lead"
	if err := u.Apply(UserPatch{Role: &role}); err != nil {
		t.Fatal(err)
	}
	if u.Role != "Lead" || u.Email != "a@x.io" {
		t.Errorf("after apply: %+v", u)
	}
}

func TestActivityInputValidate(t *testing.T) {
	if err := (ActivityInput{Action: "created", TaskTitle: "x"}).Validate(); err != nil {
		t.Fatal(err)
	}
	if err := (ActivityInput{Action: "created"}).Validate(); !IsCode(err, ErrCodeInvalid) {
		t.Errorf("missing taskTitle: err = %v", err)
	}
}

func TestEmailIsNormalized(t *testing.T) {
	u := NewUser(UserInput{Name: "Ann", Email: " Ann@Example.COM ", LoginID: "ann", Password: "pw"})
	if u.Email != "ann@example.com" {
		t.Errorf("NewUser email = %q", u.Email)
	}
	mixed := "BO@X.io"
	if err := u.Apply(UserPatch{Email: &mixed}); err != nil {
		t.Fatal(err)
	}
	if u.Email != "bo@x.io" {
		t.Errorf("Apply email = %q", u.Email)
	}
}
