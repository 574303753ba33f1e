package model

import "time"

type ModuleState string

const (
	ModuleLocked    ModuleState = "bloqueado"
	ModuleAvailable ModuleState = "disponible"
	ModuleCompleted ModuleState = "completado"
)

type LessonState string

const (
	LessonLocked    LessonState = "bloqueada"
	LessonAvailable LessonState = "disponible"
	LessonCompleted LessonState = "completada"
)

// swagger:model ModuleProgress
type ModuleProgress struct {
	BaseModel
	UserID      uint        `gorm:"column:usuario_id;uniqueIndex:uq_progreso_modulo;not null" json:"usuario_id"`
	CourseID    uint        `gorm:"column:curso_id;uniqueIndex:uq_progreso_modulo;not null" json:"curso_id"`
	ModuleID    uint        `gorm:"column:modulo_id;uniqueIndex:uq_progreso_modulo;not null" json:"modulo_id"`
	State       ModuleState `gorm:"column:estado;size:20;not null;default:'bloqueado'" json:"estado"`
	UnlockedAt  *time.Time  `gorm:"column:fecha_desbloqueo" json:"fecha_desbloqueo"`
	CompletedAt *time.Time  `gorm:"column:fecha_completado" json:"fecha_completado"`
}

func (ModuleProgress) TableName() string {
	return "progreso_modulo"
}

// swagger:model LessonProgress
type LessonProgress struct {
	BaseModel
	UserID      uint        `gorm:"column:usuario_id;uniqueIndex:uq_progreso_leccion;not null" json:"usuario_id"`
	CourseID    uint        `gorm:"column:curso_id;uniqueIndex:uq_progreso_leccion;not null" json:"curso_id"`
	ModuleID    uint        `gorm:"column:modulo_id;uniqueIndex:uq_progreso_leccion;not null" json:"modulo_id"`
	LessonID    uint        `gorm:"column:leccion_id;uniqueIndex:uq_progreso_leccion;not null" json:"leccion_id"`
	State       LessonState `gorm:"column:estado;size:20;not null;default:'bloqueada'" json:"estado"`
	LastScore   *float64    `gorm:"column:nota_ultima_prueba;type:decimal(5,2)" json:"nota_ultima_prueba"`
	Passed      bool        `gorm:"column:aprobado;default:false" json:"aprobado"`
	CompletedAt *time.Time  `gorm:"column:fecha_completado" json:"fecha_completado"`
}

func (LessonProgress) TableName() string {
	return "progreso_leccion"
}
