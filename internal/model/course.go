package model

// swagger:model Course
type Course struct {
	BaseModel
	Title       string   `gorm:"column:titulo;size:200;not null" json:"titulo"`
	Description string   `gorm:"column:descripcion;type:text" json:"descripcion"`
	Published   bool     `gorm:"column:publicado;default:false" json:"publicado"`
	Active      bool     `gorm:"column:activo;not null" json:"activo"`
	Modules     []Module `gorm:"foreignKey:CourseID" json:"modulos,omitempty"`
}

func (Course) TableName() string {
	return "cursos"
}

// swagger:model Module
type Module struct {
	BaseModel
	CourseID      uint     `gorm:"column:curso_id;index;not null" json:"curso_id"`
	Title         string   `gorm:"column:titulo;size:200;not null" json:"titulo"`
	Description   string   `gorm:"column:descripcion;type:text" json:"descripcion"`
	Order         *int     `gorm:"column:orden" json:"orden"`
	VideoIntroURL string   `gorm:"column:video_intro_url;size:500" json:"video_intro_url"`
	PDFIntroURL   string   `gorm:"column:pdf_intro_url;size:500" json:"pdf_intro_url"`
	Lessons       []Lesson `gorm:"foreignKey:ModuleID" json:"lecciones,omitempty"`
}

func (Module) TableName() string {
	return "modulos"
}

// swagger:model Lesson
type Lesson struct {
	BaseModel
	ModuleID    uint    `gorm:"column:modulo_id;index;not null" json:"modulo_id"`
	Title       string  `gorm:"column:titulo;size:200;not null" json:"titulo"`
	Description string  `gorm:"column:descripcion;type:text" json:"descripcion"`
	Order       *int    `gorm:"column:orden" json:"orden"`
	YoutubeID   string  `gorm:"column:youtube_id;size:50" json:"youtube_id"`
	PDFURL      string  `gorm:"column:pdf_url;size:500" json:"pdf_url"`
	Published   bool    `gorm:"column:publicado;default:false" json:"publicado"`
	ExamID      *uint   `gorm:"column:examen_id;index" json:"examen_id"`
	Module      *Module `gorm:"foreignKey:ModuleID" json:"-"`
}

func (Lesson) TableName() string {
	return "lecciones"
}
