package model

// UserRole 由认证服务签发，学习流程只区分身份，仅管理路由校验角色
type UserRole string

const (
	Student UserRole = "alumno"
	Teacher UserRole = "docente"
	Admin   UserRole = "admin"
)
