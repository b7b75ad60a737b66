package naming

import "testing"

func TestDestPath(t *testing.T) {
	suffix := " - no commercials"
	tests := []struct {
		name      string
		source    string
		outputArg string
		opts      Options
		want      string
	}{
		{
			name:   "in place",
			source: "/tv/News/Evening News.ts",
			want:   "/tv/News/Evening News.ts",
		},
		{
			name:   "renamed",
			source: "/tv/News/Evening News.ts",
			opts:   Options{RenameOutput: true, Suffix: suffix},
			want:   "/tv/News/Evening News - no commercials.ts",
		},
		{
			name:   "converted",
			source: "/tv/News/Evening News.ts",
			opts:   Options{Container: "mkv"},
			want:   "/tv/News/Evening News.mkv",
		},
		{
			name:   "renamed and converted",
			source: "/tv/News/Evening News.ts",
			opts:   Options{RenameOutput: true, Suffix: suffix, Container: "mp4"},
			want:   "/tv/News/Evening News - no commercials.mp4",
		},
		{
			name:      "output path keeps source name",
			source:    "/tv/News/Evening News.ts",
			outputArg: "/archive/news/other.ts",
			want:      "/archive/news/Evening News.ts",
		},
		{
			name:      "output directory with trailing slash",
			source:    "/tv/News/Evening News.ts",
			outputArg: "/archive/news/",
			opts:      Options{Container: "mkv"},
			want:      "/archive/news/Evening News.mkv",
		},
		{
			name:      "output path without slash uses its parent",
			source:    "/tv/News/Evening News.ts",
			outputArg: "/archive/news",
			want:      "/archive/Evening News.ts",
		},
		{
			name:      "output path does not override options",
			source:    "/tv/News/Evening News.ts",
			outputArg: "/archive/clean.ts",
			opts:      Options{RenameOutput: true, Suffix: suffix, Container: "mkv"},
			want:      "/archive/Evening News - no commercials.mkv",
		},
		{
			name:   "source without extension",
			source: "/tv/recording",
			opts:   Options{RenameOutput: true, Suffix: "-cut"},
			want:   "/tv/recording-cut",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DestPath(tt.source, tt.outputArg, tt.opts); got != tt.want {
				t.Errorf("DestPath = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStagingPath(t *testing.T) {
	got := StagingPath("/tv/News/Evening News.ts", "1a2b3c")
	if want := "/tv/News/.Evening News.ts.comcut-1a2b3c"; got != want {
		t.Errorf("StagingPath = %q, want %q", got, want)
	}
}

func TestSameFile(t *testing.T) {
	if !SameFile("/tv/a/../a/show.ts", "/tv/a/show.ts") {
		t.Error("cleaned paths should match")
	}
	if SameFile("/tv/a/show.ts", "/tv/a/show.mkv") {
		t.Error("different paths should not match")
	}
}
