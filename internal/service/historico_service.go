package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/minhasaulas/prof-agenda-api/internal/models"
	appErrors "github.com/minhasaulas/prof-agenda-api/pkg/errors"
	"github.com/minhasaulas/prof-agenda-api/pkg/export"
	"github.com/minhasaulas/prof-agenda-api/pkg/timeutil"
)

// Export formats accepted by the historico endpoint.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var historicoHeaders = []string{"Turma", "Disciplina", "Horário", "Conteúdo", "Exercícios", "Próximos Passos"}

// Free-text columns get the extra page width.
var historicoWidthWeights = map[string]float64{
	"Turma":           1.5,
	"Disciplina":      1.2,
	"Horário":         1,
	"Conteúdo":        2.5,
	"Exercícios":      2,
	"Próximos Passos": 2,
}

// ExportFile is a rendered export ready to be served as a download.
type ExportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

// HistoricoService lists and exports the lesson records of one calendar day.
type HistoricoService struct {
	registros registroRangeLister
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	archive   *ExportArchive
	logger    *zap.Logger
	now       func() time.Time
}

// NewHistoricoService constructs HistoricoService. The archive is optional;
// when present every served export is also copied to disk.
func NewHistoricoService(registros registroRangeLister, csv *export.CSVExporter, pdf *export.PDFExporter, archive *ExportArchive, logger *zap.Logger) *HistoricoService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoricoService{registros: registros, csv: csv, pdf: pdf, archive: archive, logger: logger, now: time.Now}
}

// ListByDate returns the records of one calendar day, newest first. Read
// failures degrade to an empty list.
func (s *HistoricoService) ListByDate(ctx context.Context, dateStr string) ([]models.RegistroDetail, string, error) {
	day := s.now()
	if dateStr != "" {
		parsed, err := time.ParseInLocation(dateLayout, dateStr, day.Location())
		if err != nil {
			return nil, "", appErrors.Clone(appErrors.ErrValidation, "data inválida, use AAAA-MM-DD")
		}
		day = parsed
	}

	start, end := timeutil.DayBounds(day)
	registros, err := s.registros.ListByDateRange(ctx, start, end)
	if err != nil {
		s.logger.Warn("failed to list historico", zap.String("date", day.Format(dateLayout)), zap.Error(err))
		registros = nil
	}
	if registros == nil {
		registros = []models.RegistroDetail{}
	}
	return registros, day.Format(dateLayout), nil
}

// Export renders one day of records as a CSV or PDF download.
func (s *HistoricoService) Export(ctx context.Context, dateStr, format string) (*ExportFile, error) {
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "formato inválido, use csv ou pdf")
	}

	registros, date, err := s.ListByDate(ctx, dateStr)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{Headers: historicoHeaders, Rows: make([]map[string]string, 0, len(registros))}
	for _, registro := range registros {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Turma":           registro.TurmaName,
			"Disciplina":      registro.TurmaSubject,
			"Horário":         registro.Horario,
			"Conteúdo":        registro.Conteudo,
			"Exercícios":      registro.Exercicios,
			"Próximos Passos": registro.ProximosPassos,
		})
	}

	var file *ExportFile
	if format == ExportFormatCSV {
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		file = &ExportFile{
			Content:     content,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("historico-%s.csv", date),
		}
	} else {
		content, err := s.pdf.Render(dataset, fmt.Sprintf("Histórico de aulas %s", date), historicoWidthWeights)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		file = &ExportFile{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("historico-%s.pdf", date),
		}
	}

	if s.archive != nil {
		s.archive.Submit(*file)
	}
	return file, nil
}
