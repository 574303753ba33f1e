package model

import "time"

// swagger:model Attempt
type Attempt struct {
	BaseModel
	ExamID          uint       `gorm:"column:examen_id;index:idx_intento_examen_usuario;not null" json:"examen_id"`
	UserID          uint       `gorm:"column:usuario_id;index:idx_intento_examen_usuario;not null" json:"usuario_id"`
	StartTime       time.Time  `gorm:"column:fecha_inicio;not null" json:"fecha_inicio"`
	EndTime         *time.Time `gorm:"column:fecha_fin" json:"fecha_fin"`
	TotalScore      *float64   `gorm:"column:puntaje_total;type:decimal(10,2)" json:"puntaje_total"`
	Passed          *bool      `gorm:"column:aprobado" json:"aprobado"`
	DurationSeconds *int       `gorm:"column:duracion_seg" json:"duracion_seg"`
	Answers         []Answer   `gorm:"foreignKey:AttemptID" json:"-"`
}

func (Attempt) TableName() string {
	return "intentos_examen"
}

func (a *Attempt) Finalized() bool {
	return a.EndTime != nil
}

// swagger:model Answer
type Answer struct {
	BaseModel
	AttemptID  uint    `gorm:"column:intento_id;index;not null" json:"intento_id"`
	QuestionID uint    `gorm:"column:pregunta_id;index;not null" json:"pregunta_id"`
	OptionID   uint    `gorm:"column:alternativa_id;not null" json:"alternativa_id"`
	Correct    bool    `gorm:"column:correcta;default:false" json:"correcta"`
	Score      float64 `gorm:"column:puntaje_obtenido;type:decimal(10,2);default:0" json:"puntaje_obtenido"`
}

func (Answer) TableName() string {
	return "respuestas_intento"
}

// AttemptSlot 每个 (考试, 学员) 一行，开考时行锁串行化同一学员的并发请求
type AttemptSlot struct {
	BaseModel
	ExamID uint `gorm:"column:examen_id;uniqueIndex:uq_intento_cupo;not null" json:"examen_id"`
	UserID uint `gorm:"column:usuario_id;uniqueIndex:uq_intento_cupo;not null" json:"usuario_id"`
}

func (AttemptSlot) TableName() string {
	return "intento_cupos"
}
