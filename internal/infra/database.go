package infra

import (
	"fmt"

	"github.com/Martin-1982/gestion-panol-eset-sub000/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then seeds the roles reference data.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates / updates the schema and seeds reference data.
// Also used by integration tests against a scratch database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Producto{},
		&model.Proveedor{},
		&model.Entrada{},
		&model.Salida{},
		&model.StockArea{},
		&model.Usuario{},
		&model.TokenVerificacion{},
		&model.Rol{},
		&model.Funcion{},
		&model.MailLog{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return seedRoles(db)
}

// seedRoles upserts the fixed rol/funcion reference data. Idempotent: the
// funciones of an existing rol are replaced so new capabilities ship with
// deploys.
func seedRoles(db *gorm.DB) error {
	seed := map[string][]string{
		"administrador": {"productos:editar", "proveedores:editar", "entradas:crear", "salidas:crear", "informes:enviar", "usuarios:editar"},
		"panolero":      {"entradas:crear", "salidas:crear", "informes:ver"},
		"consulta":      {"informes:ver"},
	}
	for nombre, funciones := range seed {
		var rol model.Rol
		if err := db.Where(model.Rol{Nombre: nombre}).FirstOrCreate(&rol).Error; err != nil {
			return fmt.Errorf("seed rol %s: %w", nombre, err)
		}
		if err := db.Where("rol_id = ?", rol.ID).Delete(&model.Funcion{}).Error; err != nil {
			return err
		}
		for _, f := range funciones {
			if err := db.Create(&model.Funcion{RolID: rol.ID, Nombre: f}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
