package csv

import "testing"

func TestCleanHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"id", "id"},
		{"First Name", "first_name"},
		{"  Post Code  ", "post_code"},
		{"e-mail.address", "e_mail_address"},
		{"Ulice č.p.", "ulice_c_p"},
		{"Počet", "pocet"},
		{"A--B", "a_b"},
		{"__x__", "x"},
		{"###", "col"},
		{"", "col"},
	}
	for _, tc := range tests {
		if got := CleanHeader(tc.in); got != tc.want {
			t.Errorf("CleanHeader(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
