package pdfmeta

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF lays out objects 1..n with a classic xref table. The trailer
// points /Root at object 1 and /Info at infoNum when it is non-zero.
func buildPDF(objects []string, infoNum int) []byte {
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")
	offsets := make([]int, len(objects)+1)
	for i, body := range objects {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f\r\n")
	for _, off := range offsets[1:] {
		fmt.Fprintf(&buf, "%010d 00000 n\r\n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R", len(objects)+1)
	if infoNum > 0 {
		fmt.Fprintf(&buf, " /Info %d 0 R", infoNum)
	}
	fmt.Fprintf(&buf, " >>\nstartxref\n%d\n%%%%EOF\n", xref)
	return buf.Bytes()
}

var twoPages = []string{
	"<< /Type /Catalog /Pages 2 0 R >>",
	"<< /Type /Pages /Kids [3 0 R 4 0 R] /Count 2 >>",
	"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] >>",
	"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] >>",
}

func deflate(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestLoad_NotPDF(t *testing.T) {
	_, err := Load([]byte("<html></html>"))
	assert.ErrorIs(t, err, ErrNotPDF)
}

func TestLoad_MissingStartXRef(t *testing.T) {
	_, err := Load([]byte("%PDF-1.4\n1 0 obj\n<< >>\nendobj\n"))
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	doc, err := Load(buildPDF(twoPages, 0))
	require.NoError(t, err)
	assert.Equal(t, "1.4", doc.Version())
}

func TestPageCount(t *testing.T) {
	doc, err := Load(buildPDF(twoPages, 0))
	require.NoError(t, err)
	n, err := doc.PageCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestPageCount_WalksKidsWithoutCount(t *testing.T) {
	objs := append([]string(nil), twoPages...)
	objs[1] = "<< /Type /Pages /Kids [3 0 R 4 0 R] >>"
	doc, err := Load(buildPDF(objs, 0))
	require.NoError(t, err)
	n, err := doc.PageCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestInfo_Absent(t *testing.T) {
	doc, err := Load(buildPDF(twoPages, 0))
	require.NoError(t, err)
	info, err := doc.Info()
	require.NoError(t, err)
	assert.Equal(t, Info{}, info)
}

func TestInfo_LiteralStrings(t *testing.T) {
	objs := append(append([]string(nil), twoPages...),
		`<< /Title (Quarterly \(Q3\) Report) /Producer (Skia/PDF m120) /Creator (Chromium) >>`)
	doc, err := Load(buildPDF(objs, 5))
	require.NoError(t, err)

	info, err := doc.Info()
	require.NoError(t, err)
	assert.Equal(t, "Quarterly (Q3) Report", info.Title)
	assert.Equal(t, "Skia/PDF m120", info.Producer)
	assert.Equal(t, "Chromium", info.Creator)
}

func TestInfo_UTF16Title(t *testing.T) {
	// FEFF 0052 00E9 0073 0075 006D 00E9 = "Résumé"
	objs := append(append([]string(nil), twoPages...),
		`<< /Title <FEFF005200E900730075006D00E9> >>`)
	doc, err := Load(buildPDF(objs, 5))
	require.NoError(t, err)

	info, err := doc.Info()
	require.NoError(t, err)
	assert.Equal(t, "Résumé", info.Title)
}

func TestInfo_IndirectTitle(t *testing.T) {
	objs := append(append([]string(nil), twoPages...),
		`<< /Title 6 0 R >>`,
		`(Indirect)`)
	doc, err := Load(buildPDF(objs, 5))
	require.NoError(t, err)

	info, err := doc.Info()
	require.NoError(t, err)
	assert.Equal(t, "Indirect", info.Title)
}

func TestInfo_TextEncodings(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"ascii", "(Invoice)", "Invoice"},
		{"latin1", "<63E9>", "cé"},
		{"pdfdoc bullet", "<802078>", "• x"},
		{"utf16", "<FEFF0041263A>", "A☺"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			objs := append(append([]string(nil), twoPages...), "<< /Title "+tt.title+" >>")
			doc, err := Load(buildPDF(objs, 5))
			require.NoError(t, err)

			info, err := doc.Info()
			require.NoError(t, err)
			assert.Equal(t, tt.want, info.Title)
		})
	}
}

func TestInfo_NotADictionary(t *testing.T) {
	objs := append(append([]string(nil), twoPages...), "(just a string)")
	doc, err := Load(buildPDF(objs, 5))
	require.NoError(t, err)

	_, err = doc.Info()
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestMalformedStreams(t *testing.T) {
	tests := []struct {
		name string
		obj  string
	}{
		{"length overflows", "<< /Length 9223372036854775807 >>\nstream\nabc\nendstream"},
		{"length refers to itself", "<< /Length 5 0 R >>\nstream\nabc\nendstream"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			objs := append(append([]string(nil), twoPages...), tt.obj)

			doc, err := Load(buildPDF(objs, 0))
			require.NoError(t, err)
			n, err := doc.PageCount()
			require.NoError(t, err)
			assert.Equal(t, 2, n)

			doc, err = Load(buildPDF(objs, 5))
			require.NoError(t, err)
			assert.NotPanics(t, func() {
				_, err = doc.Info()
			})
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestPageCount_CyclicTree(t *testing.T) {
	objs := append([]string(nil), twoPages...)
	objs[1] = "<< /Type /Pages /Kids [2 0 R] >>"
	doc, err := Load(buildPDF(objs, 0))
	require.NoError(t, err)

	_, err = doc.PageCount()
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestLoad_TruncatedXRef(t *testing.T) {
	data := buildPDF(twoPages, 0)
	i := bytes.Index(data, []byte("xref\n"))
	require.Positive(t, i)
	corrupt := append(append([]byte(nil), data[:i]...), []byte("xref\n0 9\ngarbage\nstartxref\n0\n%%EOF\n")...)

	assert.NotPanics(t, func() {
		_, err := Load(corrupt)
		assert.Error(t, err)
	})
}

// buildXRefStreamPDF writes the catalog, page tree and one page as plain
// objects, packs the /Info dictionary into an object stream, and indexes
// everything with a PNG-predicted xref stream.
func buildXRefStreamPDF(t *testing.T, infoBody string) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.7\n")
	offsets := map[int]int{}
	plain := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
	}
	for i, body := range plain {
		offsets[i+1] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	// Object 5 is an object stream holding object 4.
	header := "4 0 "
	packed := deflate(t, []byte(header+infoBody))
	offsets[5] = buf.Len()
	fmt.Fprintf(&buf, "5 0 obj\n<< /Type /ObjStm /N 1 /First %d /Filter /FlateDecode /Length %d >>\nstream\n",
		len(header), len(packed))
	buf.Write(packed)
	buf.WriteString("\nendstream\nendobj\n")

	// Object 6 is the xref stream: W [1 4 2], rows for objects 0..6.
	xrefOff := buf.Len()
	type row struct {
		kind byte
		f2   uint32
		f3   uint16
	}
	rows := []row{
		{0, 0, 65535},
		{1, uint32(offsets[1]), 0},
		{1, uint32(offsets[2]), 0},
		{1, uint32(offsets[3]), 0},
		{2, 5, 0},
		{1, uint32(offsets[5]), 0},
		{1, uint32(xrefOff), 0},
	}
	const cols = 7
	var raw []byte
	prev := make([]byte, cols)
	for _, r := range rows {
		cur := make([]byte, cols)
		cur[0] = r.kind
		binary.BigEndian.PutUint32(cur[1:5], r.f2)
		binary.BigEndian.PutUint16(cur[5:7], r.f3)
		raw = append(raw, 2) // PNG "Up" filter
		for i := range cur {
			raw = append(raw, cur[i]-prev[i])
		}
		prev = cur
	}
	stream := deflate(t, raw)
	fmt.Fprintf(&buf, "6 0 obj\n<< /Type /XRef /Size 7 /W [1 4 2] /Root 1 0 R /Info 4 0 R"+
		" /Filter /FlateDecode /DecodeParms << /Predictor 12 /Columns %d >> /Length %d >>\nstream\n",
		cols, len(stream))
	buf.Write(stream)
	buf.WriteString("\nendstream\nendobj\n")
	fmt.Fprintf(&buf, "startxref\n%d\n%%%%EOF\n", xrefOff)
	return buf.Bytes()
}

func TestXRefStream_WithObjectStream(t *testing.T) {
	doc, err := Load(buildXRefStreamPDF(t, "<< /Title (Packed Title) /Author (QA) >>"))
	require.NoError(t, err)

	assert.Equal(t, "1.7", doc.Version())

	n, err := doc.PageCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	info, err := doc.Info()
	require.NoError(t, err)
	assert.Equal(t, "Packed Title", info.Title)
	assert.Equal(t, "QA", info.Author)
}
