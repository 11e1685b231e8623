package service

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/dto"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/infra"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/model"
	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/repository"

	"github.com/rs/zerolog/log"
)

type InformeService interface {
	// Stock is the consolidated report: derived stock per product, cached
	// briefly in Redis and invalidated on every movement write.
	Stock(ctx context.Context, filter dto.ProductoFilter) ([]dto.StockReportRow, error)
	StockExcel(ctx context.Context, filter dto.ProductoFilter) ([]byte, error)
	Remito(ctx context.Context, req dto.BulkSalidaRequest, numero uint, fecha string) ([]byte, error)
	// Enviar delivers a report by email. The mail_logs row is written
	// unconditionally; a delivery failure still returns success to the caller.
	Enviar(ctx context.Context, req dto.EnviarInformeRequest, adjunto *multipart.FileHeader) (*dto.EnviarInformeResponse, error)
	MailLogs(ctx context.Context) ([]dto.MailLogResponse, error)
}

type informeService struct {
	productoRepo repository.ProductoRepository
	mailLogs     repository.MailLogRepository
	mailer       Mailer
	storage      *infra.Storage
	cache        *StockCache
	now          func() time.Time
}

func NewInformeService(
	productoRepo repository.ProductoRepository,
	mailLogs repository.MailLogRepository,
	mailer Mailer,
	storage *infra.Storage,
	cache *StockCache,
) InformeService {
	return &informeService{
		productoRepo: productoRepo,
		mailLogs:     mailLogs,
		mailer:       mailer,
		storage:      storage,
		cache:        cache,
		now:          time.Now,
	}
}

func (s *informeService) Stock(ctx context.Context, filter dto.ProductoFilter) ([]dto.StockReportRow, error) {
	if rows, ok := s.cache.Get(ctx, filter); ok {
		return rows, nil
	}

	raw, err := s.productoRepo.ListarConStock(ctx, filter)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.StockReportRow, 0, len(raw))
	for _, r := range raw {
		rows = append(rows, dto.StockReportRow{
			ProductoID:    r.ID,
			Nombre:        r.Nombre,
			Categoria:     r.Categoria,
			Subcategoria:  r.Subcategoria,
			Unidad:        r.Unidad,
			Tipo:          r.Tipo,
			Minimo:        r.Minimo,
			EntradasTotal: r.EntradasTotal,
			SalidasTotal:  r.SalidasTotal,
			Stock:         r.Stock,
		})
	}

	s.cache.Set(ctx, filter, rows)
	return rows, nil
}

func (s *informeService) StockExcel(ctx context.Context, filter dto.ProductoFilter) ([]byte, error) {
	rows, err := s.Stock(ctx, filter)
	if err != nil {
		return nil, err
	}
	excelRows := make([]infra.StockRow, 0, len(rows))
	for _, r := range rows {
		excelRows = append(excelRows, infra.StockRow{
			ProductoID:    r.ProductoID,
			Nombre:        r.Nombre,
			Categoria:     r.Categoria,
			Unidad:        r.Unidad,
			Tipo:          r.Tipo,
			Minimo:        r.Minimo,
			EntradasTotal: r.EntradasTotal,
			SalidasTotal:  r.SalidasTotal,
			Stock:         r.Stock,
		})
	}
	return infra.GenerarStockExcel(excelRows)
}

// Remito renders the two-copy delivery receipt for a committed salida batch.
// fecha is the DD-MM-YYYY value the bulk endpoint returned.
func (s *informeService) Remito(ctx context.Context, req dto.BulkSalidaRequest, numero uint, fecha string) ([]byte, error) {
	f, err := time.Parse(FechaRemito, fecha)
	if err != nil {
		f = s.now()
	}
	remito := &infra.Remito{
		Numero:      numero,
		Destino:     req.Destino,
		Responsable: req.Responsable,
		Fecha:       f,
	}
	for _, item := range req.Items {
		p, err := s.productoRepo.FindByID(ctx, item.ProductoID)
		if err != nil {
			return nil, &ProductoNoEncontradoError{ProductoID: item.ProductoID}
		}
		remito.Lineas = append(remito.Lineas, infra.RemitoLinea{
			Producto: p.Nombre,
			Unidad:   p.Unidad,
			Cantidad: item.Cantidad,
		})
	}
	return infra.GenerarRemitoPDF(remito)
}

func (s *informeService) Enviar(ctx context.Context, req dto.EnviarInformeRequest, adjunto *multipart.FileHeader) (*dto.EnviarInformeResponse, error) {
	var adjuntoRel string
	var adjuntoAbs string
	if adjunto != nil {
		rel, err := s.storage.Save(adjunto, s.now())
		if err != nil {
			return nil, err
		}
		adjuntoRel = rel
		if abs, absErr := s.storage.Abs(rel); absErr == nil {
			adjuntoAbs = abs
		}
	}

	estado, respuesta := model.MailEnviado, "ok"
	if err := s.mailer.Send(req.Para, req.Asunto, req.Mensaje, adjuntoAbs); err != nil {
		estado, respuesta = model.MailError, err.Error()
		log.Warn().Err(err).Str("to", req.Para).Msg("informe: mail delivery failed")
	}

	logRow := &model.MailLog{
		Destinatario: req.Para,
		Asunto:       req.Asunto,
		Estado:       estado,
		Respuesta:    respuesta,
	}
	if adjuntoRel != "" {
		logRow.Adjunto = &adjuntoRel
	}
	if err := s.mailLogs.Create(ctx, logRow); err != nil {
		log.Error().Err(err).Msg("informe: mail log write failed")
	}

	return &dto.EnviarInformeResponse{
		OK:      true,
		Estado:  estado,
		Adjunto: adjuntoRel,
	}, nil
}

func (s *informeService) MailLogs(ctx context.Context) ([]dto.MailLogResponse, error) {
	logs, err := s.mailLogs.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MailLogResponse, 0, len(logs))
	for _, m := range logs {
		resp = append(resp, dto.MailLogResponse{
			ID:           m.ID,
			Destinatario: m.Destinatario,
			Asunto:       m.Asunto,
			Estado:       m.Estado,
			Respuesta:    m.Respuesta,
			Adjunto:      m.Adjunto,
			CreatedAt:    m.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}
