package converter

import (
	authdto "gachapon_backend/internal/api/dto/auth"
	"gachapon_backend/internal/model"
)

func RegisterRequestToUserModel(req *authdto.RegisterRequest) *model.User {
	return &model.User{
		Name:     req.Name,
		Login:    req.Login,
		Password: req.Password,
	}
}

func LoginRequestToUserModel(req *authdto.LoginRequest) *model.User {
	return &model.User{
		Login:    req.Login,
		Password: req.Password,
	}
}
