package mediatypes

import (
	"testing"
)

func TestClassifyKnownExtensions(t *testing.T) {
	sets := []struct {
		name string
		exts map[string]bool
		want Kind
	}{
		{"video", VideoExtensions, KindVideo},
		{"audio", AudioExtensions, KindAudio},
		{"image", ImageExtensions, KindImage},
	}

	for _, set := range sets {
		for ext := range set.exts {
			t.Run(set.name+ext, func(t *testing.T) {
				if got := Classify("/media/clip" + ext); got != set.want {
					t.Errorf("Classify(clip%s) = %v, want %v", ext, got, set.want)
				}
			})
		}
	}
}

func TestExtensionSetsDisjoint(t *testing.T) {
	for ext := range VideoExtensions {
		if AudioExtensions[ext] || ImageExtensions[ext] {
			t.Errorf("extension %s is in more than one set", ext)
		}
	}
	for ext := range AudioExtensions {
		if ImageExtensions[ext] {
			t.Errorf("extension %s is in both audio and image sets", ext)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Kind
	}{
		{"MP4 video", "a/b/clip.mp4", KindVideo},
		{"uppercase MOV", "CLIP.MOV", KindVideo},
		{"MP3 audio", "song.mp3", KindAudio},
		{"mixed case WAV", "Take1.WaV", KindAudio},
		{"PNG image", "frame.png", KindImage},
		{"JPEG image", `C:\Users\me\photo.jpeg`, KindImage},
		{"unknown extension defaults to video", "data.xyz", KindVideo},
		{"no extension defaults to video", "recording", KindVideo},
		{"dotfile defaults to video", ".hidden", KindVideo},
		{"trailing dot defaults to video", "weird.", KindVideo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.path); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input  string
		want   Kind
		wantOK bool
	}{
		{"video", KindVideo, true},
		{"Audio", KindAudio, true},
		{" image ", KindImage, true},
		{"", "", false},
		{"folder", "folder", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseKind(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseKind(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseKind(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestGetMimeType(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{".jpg", "image/jpeg"},
		{".png", "image/png"},
		{".mp4", "video/mp4"},
		{".m4a", "audio/mp4"},
		{".unknown", "application/octet-stream"},
		{"", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			if got := GetMimeType(tt.ext); got != tt.want {
				t.Errorf("GetMimeType(%q) = %v, want %v", tt.ext, got, tt.want)
			}
		})
	}
}
