// Package auth casos de uso de autenticación y administración de usuarios.
package auth

import (
	"github.com/pansoft/panaderia-mrp/internal/application/dto"
	"github.com/pansoft/panaderia-mrp/internal/domain"
	"github.com/pansoft/panaderia-mrp/internal/domain/entity"
	"github.com/pansoft/panaderia-mrp/internal/domain/repository"
	"github.com/pansoft/panaderia-mrp/pkg/jwt"
	"github.com/pansoft/panaderia-mrp/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación: login y gestión de usuarios.
type UseCase struct {
	userRepo repository.UserRepository
	logRepo  repository.SystemLogRepository
	jwtCfg   JWTConfig
	log      *logger.Logger
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(userRepo repository.UserRepository, logRepo repository.SystemLogRepository, jwtCfg JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{userRepo: userRepo, logRepo: logRepo, jwtCfg: jwtCfg, log: log}
}

// Login verifica username/password, genera JWT y retorna token + usuario.
// Un fallo de storage se registra en el log pero hacia el cliente se
// responde igual que con credenciales inválidas, para no filtrar el estado
// interno en el endpoint de login.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		uc.log.Error().Err(err).Str("username", in.Username).Msg("login: error consultando usuario")
		return nil, domain.Unauthorized("credenciales inválidas")
	}
	if user == nil || !user.Active || user.PasswordHash != HashPassword(in.Password) {
		return nil, domain.Unauthorized("credenciales inválidas")
	}

	if err := uc.userRepo.TouchLastAccess(user.ID); err != nil {
		// El login sigue siendo válido aunque no se pueda marcar el acceso.
		uc.log.Warn().Err(err).Int64("user_id", user.ID).Msg("login: no se pudo actualizar ultimo_acceso")
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, domain.Internal("generar token", err)
	}

	uc.audit(user.ID, "auth", "LOGIN", "ingreso de "+user.Username)
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// RegisterUser crea un usuario con el hash legado. Solo lo invoca un admin
// (el handler aplica RequireRole).
func (uc *UseCase) RegisterUser(actorID int64, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	user := &entity.User{
		Username:     in.Username,
		Name:         in.Name,
		Role:         in.Role,
		PasswordHash: HashPassword(in.Password),
		Permissions:  in.Permissions,
		Email:        in.Email,
		Phone:        in.Phone,
		Department:   in.Department,
		CreatedBy:    actorID,
		Active:       true,
	}
	if err := uc.userRepo.Create(user); err != nil {
		if err == domain.ErrDuplicate {
			return nil, domain.Duplicate("el username ya existe")
		}
		return nil, domain.Internal("crear usuario", err)
	}
	uc.audit(actorID, "usuarios", "CREAR_USUARIO", "usuario "+user.Username)
	return toUserResponse(user), nil
}

// UpdateUser aplica cambios parciales; el password llega en texto y se
// vuelve a hashear.
func (uc *UseCase) UpdateUser(actorID, id int64, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, domain.Internal("buscar usuario", err)
	}
	if user == nil {
		return nil, domain.NotFoundf("usuario %d no existe", id)
	}

	if in.Password != nil {
		user.PasswordHash = HashPassword(*in.Password)
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.Permissions != nil {
		user.Permissions = *in.Permissions
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Department != nil {
		user.Department = *in.Department
	}
	if in.Active != nil {
		user.Active = *in.Active
	}

	if err := uc.userRepo.Update(user); err != nil {
		return nil, domain.Internal("actualizar usuario", err)
	}
	uc.audit(actorID, "usuarios", "ACTUALIZAR_USUARIO", "usuario "+user.Username)
	return toUserResponse(user), nil
}

// ListUsers devuelve los usuarios registrados.
func (uc *UseCase) ListUsers(page dto.PageRequest) ([]dto.UserResponse, error) {
	page.DefaultPage()
	users, err := uc.userRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, domain.Internal("listar usuarios", err)
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

// DeactivateUser baja lógica de un usuario.
func (uc *UseCase) DeactivateUser(actorID, id int64) error {
	if err := uc.userRepo.Deactivate(id); err != nil {
		if err == domain.ErrUserNotFound {
			return domain.NotFoundf("usuario %d no existe", id)
		}
		return domain.Internal("desactivar usuario", err)
	}
	uc.audit(actorID, "usuarios", "DESACTIVAR_USUARIO", "")
	return nil
}

// audit registra en la bitácora best-effort: un fallo se loguea y no
// afecta la operación ya completada.
func (uc *UseCase) audit(userID int64, module, action, details string) {
	err := uc.logRepo.Append(&entity.SystemLog{
		UserID:  userID,
		Module:  module,
		Action:  action,
		Details: details,
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("accion", action).Msg("bitacora: no se pudo registrar")
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		Name:        u.Name,
		Role:        u.Role,
		Permissions: u.Permissions,
		Email:       u.Email,
		Phone:       u.Phone,
		Department:  u.Department,
		CreatedAt:   u.CreatedAt,
		LastAccess:  u.LastAccess,
		Active:      u.Active,
	}
}
