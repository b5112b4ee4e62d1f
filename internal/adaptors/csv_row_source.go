package adaptors

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"seo_meta_audit/internal/domain/models"
	"seo_meta_audit/internal/pkg/errors"

	log "github.com/sirupsen/logrus"
)

const rowFields = 3

// CSVRowSource reads audit rows from a comma separated table whose first
// record is a header.
type CSVRowSource struct {
	path   string
	reader io.Reader
	log    *log.Logger
}

func NewCSVFileRowSource(path string, log *log.Logger) *CSVRowSource {
	return &CSVRowSource{path: path, log: log}
}

func NewCSVRowSource(r io.Reader, log *log.Logger) *CSVRowSource {
	return &CSVRowSource{reader: r, log: log}
}

func (s *CSVRowSource) Rows() ([]models.Row, error) {
	if s.reader != nil {
		return s.parse(s.reader)
	}

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Kind(errors.ErrInputFileMissing, fmt.Sprintf(`%s does not exist. Be sure that the file is located in the path`, s.path))
		}
		return nil, errors.Wrap(err, `failed to open `+s.path)
	}
	defer f.Close()

	return s.parse(f)
}

func (s *CSVRowSource) parse(r io.Reader) ([]models.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows []models.Row
	header := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapKind(errors.ErrMalformedRow, err, `failed to read csv`)
		}
		line, _ := reader.FieldPos(0)
		if header {
			header = false
			continue
		}
		if len(record) < rowFields {
			return nil, errors.Kind(errors.ErrMalformedRow, fmt.Sprintf(`line %d has %d fields, want %d`, line, len(record), rowFields))
		}
		rows = append(rows, models.Row{
			Line:                line,
			URL:                 record[0],
			ExpectedTitle:       record[1],
			ExpectedDescription: record[2],
		})
	}

	s.log.WithField(`rows`, len(rows)).Debug(`csv rows loaded`)
	return rows, nil
}
