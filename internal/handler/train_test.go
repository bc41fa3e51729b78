package handler

import "testing"

func TestSniffImageExt(t *testing.T) {
	webp := append([]byte("RIFF"), 0x24, 0x00, 0x00, 0x00)
	webp = append(webp, []byte("WEBPVP8 ")...)

	cases := []struct {
		name    string
		head    []byte
		wantExt string
		ok      bool
	}{
		{
			name:    "png",
			head:    []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13},
			wantExt: ".png",
			ok:      true,
		},
		{
			name:    "jpeg",
			head:    []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F'},
			wantExt: ".jpg",
			ok:      true,
		},
		{
			name:    "gif",
			head:    []byte("GIF89a\x01\x00\x01\x00"),
			wantExt: ".gif",
			ok:      true,
		},
		{
			name:    "webp",
			head:    webp,
			wantExt: ".webp",
			ok:      true,
		},
		{name: "plain text", head: []byte("hello world")},
		{name: "pdf", head: []byte("%PDF-1.7\n")},
		{name: "empty", head: nil},
		{name: "html disguised as image", head: []byte("<html><body>")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ext, ok := sniffImageExt(tc.head)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v (ext %q)", ok, tc.ok, ext)
			}
			if ext != tc.wantExt {
				t.Fatalf("ext = %q, want %q", ext, tc.wantExt)
			}
		})
	}
}
