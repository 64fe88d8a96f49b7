package app

import "testing"

func TestListenAddr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		port    string
		want    string
		wantErr bool
	}{
		{port: "8080", want: ":8080"},
		{port: " :9000 ", want: ":9000"},
		{port: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ListenAddr(tt.port)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Fatalf("ListenAddr(%q) = %q, %v", tt.port, got, err)
		}
	}
}
