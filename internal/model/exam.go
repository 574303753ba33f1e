package model

// swagger:model Exam
type Exam struct {
	BaseModel
	CourseID         *uint      `gorm:"column:curso_id;index" json:"curso_id"`
	Title            string     `gorm:"column:titulo;size:200;not null" json:"titulo"`
	Description      string     `gorm:"column:descripcion;type:text" json:"descripcion"`
	TimeLimitSeconds *int       `gorm:"column:tiempo_limite_seg" json:"tiempo_limite_seg"`
	MaxAttempts      *int       `gorm:"column:intento_max" json:"intento_max"`
	Published        bool       `gorm:"column:publicado;default:false" json:"publicado"`
	Questions        []Question `gorm:"foreignKey:ExamID" json:"preguntas,omitempty"`
}

func (Exam) TableName() string {
	return "examenes"
}

// HasAttemptCap intento_max 为空或非正数表示不限次数
func (e *Exam) HasAttemptCap() bool {
	return e.MaxAttempts != nil && *e.MaxAttempts > 0
}

func (e *Exam) HasTimeLimit() bool {
	return e.TimeLimitSeconds != nil && *e.TimeLimitSeconds > 0
}

// swagger:model Question
type Question struct {
	BaseModel
	ExamID  uint     `gorm:"column:examen_id;index;not null" json:"examen_id"`
	Text    string   `gorm:"column:enunciado;type:text;not null" json:"enunciado"`
	Score   float64  `gorm:"column:puntaje;type:decimal(10,2);default:1" json:"puntaje"`
	Order   *int     `gorm:"column:orden" json:"orden"`
	Options []Option `gorm:"foreignKey:QuestionID" json:"alternativas,omitempty"`
}

func (Question) TableName() string {
	return "preguntas"
}

// swagger:model Option
type Option struct {
	BaseModel
	QuestionID uint   `gorm:"column:pregunta_id;index;not null" json:"pregunta_id"`
	Text       string `gorm:"column:texto;type:text;not null" json:"texto"`
	IsCorrect  bool   `gorm:"column:es_correcta;default:false" json:"-"`
}

func (Option) TableName() string {
	return "alternativas"
}
