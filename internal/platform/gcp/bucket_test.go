package gcp

import "testing"

func TestPublicURLGCSDefault(t *testing.T) {
	got := publicURL(BucketConfig{Name: "hm-notes"}, "notes/u1/a.png")
	if got != "https://storage.googleapis.com/hm-notes/notes/u1/a.png" {
		t.Fatalf("unexpected url: %q", got)
	}
}

func TestPublicURLPrefersCDN(t *testing.T) {
	got := publicURL(BucketConfig{Name: "hm-notes", CDNDomain: "cdn.example.com/"}, "/a.jpg")
	if got != "https://cdn.example.com/a.jpg" {
		t.Fatalf("unexpected url: %q", got)
	}
}

func TestPublicURLEmulator(t *testing.T) {
	got := publicURL(BucketConfig{Name: "hm-notes", EmulatorHost: "http://fake-gcs:4443"}, "notes/a b.png")
	want := "http://fake-gcs:4443/download/storage/v1/b/hm-notes/o/notes%2Fa%20b.png?alt=media"
	if got != want {
		t.Fatalf("want=%q got=%q", want, got)
	}
}

func TestContentTypeForKey(t *testing.T) {
	cases := map[string]string{
		"a.PNG":      "image/png",
		"a.jpeg?x=1": "image/jpeg",
		"a.webp":     "image/webp",
		"a.bin":      "",
	}
	for key, want := range cases {
		if got := contentTypeForKey(key); got != want {
			t.Fatalf("%s: want=%q got=%q", key, want, got)
		}
	}
}

func TestBucketConfigFromEnv(t *testing.T) {
	t.Setenv("NOTES_GCS_BUCKET_NAME", "b")
	t.Setenv("NOTES_CDN_DOMAIN", "")
	t.Setenv("STORAGE_EMULATOR_HOST", "http://localhost:4443/")
	cfg := BucketConfigFromEnv()
	if cfg.Name != "b" || cfg.EmulatorHost != "http://localhost:4443" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}
