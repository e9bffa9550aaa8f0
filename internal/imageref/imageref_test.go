package imageref

import (
	"strings"
	"sync"
	"testing"

	pkgerrors "github.com/zhubert/sketchlab/internal/errors"
)

func TestStore_CreateResolve(t *testing.T) {
	s := NewStore()
	data := []byte{0x89, 'P', 'N', 'G'}

	ref := s.Create(data, "image/png")
	if !strings.HasPrefix(ref.String(), Scheme) {
		t.Errorf("ref %q should start with %q", ref, Scheme)
	}
	if !IsLocal(ref.String()) {
		t.Error("IsLocal should recognise store refs")
	}

	blob, err := s.Resolve(ref)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if string(blob.Data) != string(data) || blob.MediaType != "image/png" {
		t.Errorf("Resolve returned %+v", blob)
	}

	// Mutating the caller's slice must not change the stored bytes
	data[0] = 0
	blob, _ = s.Resolve(ref)
	if blob.Data[0] != 0x89 {
		t.Error("Create should copy the payload")
	}
}

func TestStore_FreshRefs(t *testing.T) {
	s := NewStore()
	a := s.Create([]byte("x"), "image/png")
	b := s.Create([]byte("x"), "image/png")
	if a == b {
		t.Error("each Create should allocate a distinct ref")
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestStore_Revoke(t *testing.T) {
	s := NewStore()
	ref := s.Create([]byte("x"), "image/png")

	if !s.Revoke(ref) {
		t.Error("Revoke should report true for a held ref")
	}
	if s.Revoke(ref) {
		t.Error("second Revoke should report false")
	}

	_, err := s.Resolve(ref)
	if !pkgerrors.Is(err, pkgerrors.KindNotFound) {
		t.Errorf("Resolve after Revoke should be KindNotFound, got %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestStore_Concurrent(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref := s.Create([]byte("x"), "image/png")
			if _, err := s.Resolve(ref); err != nil {
				t.Errorf("Resolve failed: %v", err)
			}
		}()
	}
	wg.Wait()
	if s.Len() != 20 {
		t.Errorf("Len() = %d, want 20", s.Len())
	}
}

func TestRefClassification(t *testing.T) {
	tests := []struct {
		ref                 string
		local, data, remote bool
	}{
		{"blob:sketchlab/abc", true, false, false},
		{"data:image/png;base64,AAAA", false, true, false},
		{"https://x/y.png", false, false, true},
		{"http://x/y.png", false, false, true},
		{"file:///tmp/y.png", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			if IsLocal(tt.ref) != tt.local {
				t.Errorf("IsLocal = %v", !tt.local)
			}
			if IsDataURI(tt.ref) != tt.data {
				t.Errorf("IsDataURI = %v", !tt.data)
			}
			if IsRemote(tt.ref) != tt.remote {
				t.Errorf("IsRemote = %v", !tt.remote)
			}
		})
	}
}

func TestDecodeDataURI(t *testing.T) {
	tests := []struct {
		name      string
		ref       string
		wantData  string
		wantMedia string
		wantKind  pkgerrors.Kind
		wantErr   bool
	}{
		{"base64 png", "data:image/png;base64,aGVsbG8=", "hello", "image/png", 0, false},
		{"unpadded base64", "data:image/webp;base64,aGVsbG8", "hello", "image/webp", 0, false},
		{"percent encoded", "data:,hello%20world", "hello world", "text/plain", 0, false},
		{"not data", "https://x/y.png", "", "", pkgerrors.KindInvalid, true},
		{"no comma", "data:image/png;base64", "", "", pkgerrors.KindMalformed, true},
		{"bad base64", "data:image/png;base64,!!!", "", "", pkgerrors.KindMalformed, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob, err := DecodeDataURI(tt.ref)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !pkgerrors.Is(err, tt.wantKind) {
					t.Errorf("kind = %v, want %v", pkgerrors.GetKind(err), tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(blob.Data) != tt.wantData {
				t.Errorf("data = %q, want %q", blob.Data, tt.wantData)
			}
			if blob.MediaType != tt.wantMedia {
				t.Errorf("media type = %q, want %q", blob.MediaType, tt.wantMedia)
			}
		})
	}
}
