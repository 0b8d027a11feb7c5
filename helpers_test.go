package musicxml_test

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

const etude = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE score-partwise PUBLIC "-//Recordare//DTD MusicXML 4.0 Partwise//EN" "http://www.musicxml.org/dtds/partwise.dtd">
<score-partwise version="4.0">
  <work><work-title>Etude</work-title></work>
  <part-list><score-part id="P1"><part-name>Piano</part-name></score-part></part-list>
  <part id="P1">
    <measure number="1">
      <attributes><divisions>1</divisions></attributes>
      <note><pitch><step>C</step><octave>5</octave></pitch><duration>2</duration><voice>1</voice></note>
      <note><chord/><pitch><step>E</step><octave>5</octave></pitch><duration>2</duration><voice>1</voice></note>
      <note><rest/><duration>1</duration><voice>2</voice></note>
      <barline location="right"><repeat direction="backward"/></barline>
    </measure>
    <measure number="2">
      <note><pitch><step>G</step><octave>4</octave></pitch><duration>4</duration><voice>1</voice></note>
    </measure>
  </part>
</score-partwise>`

// missingOctave has one note without an octave, which yields one warning.
const missingOctave = `<score-partwise>
  <part id="P1"><measure number="1">
    <note><pitch><step>D</step></pitch><duration>1</duration></note>
  </measure></part>
</score-partwise>`

func writeFile(tb testing.TB, name string, data []byte) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatal(err)
	}
	return path
}

// createMXL packs doc into a compressed archive with a container manifest.
func createMXL(tb testing.TB, doc string) []byte {
	tb.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := []struct{ name, body string }{
		{"mimetype", "application/vnd.recordare.musicxml"},
		{"META-INF/container.xml", `<container><rootfiles><rootfile full-path="score.musicxml"/></rootfiles></container>`},
		{"score.musicxml", doc},
	}
	for _, f := range files {
		w, err := zw.Create(f.name)
		if err != nil {
			tb.Fatal(err)
		}
		if _, err := w.Write([]byte(f.body)); err != nil {
			tb.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		tb.Fatal(err)
	}
	return buf.Bytes()
}
