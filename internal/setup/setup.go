package setup

import (
	"github.com/fboard-dev/fboard/internal/config"
	"github.com/fboard-dev/fboard/internal/email"
	"github.com/fboard-dev/fboard/internal/handler"
	"github.com/fboard-dev/fboard/internal/jwt"
	"github.com/fboard-dev/fboard/internal/markdown"
	"github.com/fboard-dev/fboard/internal/middleware"
	"github.com/fboard-dev/fboard/internal/otp"
	"github.com/fboard-dev/fboard/internal/service"
	"github.com/fboard-dev/fboard/internal/storage/pg"
)

// Dependencies holds everything the router needs, built once at startup.
type Dependencies struct {
	Storage        *pg.Storage
	Handler        *handler.Handler
	Jwt            jwt.JwtService
	AuthMiddleware *middleware.Auth
	Config         *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	mail := email.New(&cfg.Private.Email)
	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())
	codes := otp.NewMailer(storage, mail, cfg.LoginCodeTTL())

	verification := service.NewVerification(storage, codes, mail, cfg.VerifiedTTL())
	board := service.NewBoard(storage, cfg.BoardTTL())
	post := service.NewPost(storage)
	vote := service.NewVote(storage, verification)
	comment := service.NewComment(storage, verification)
	changelog := service.NewChangelog(storage, markdown.New())
	account := service.NewAccount(storage, verification, jwtService)

	h := handler.New(board, post, vote, comment, changelog, verification, account, storage, cfg)

	return &Dependencies{
		Storage:        storage,
		Handler:        h,
		Jwt:            jwtService,
		AuthMiddleware: middleware.NewAuth(jwtService),
		Config:         cfg,
	}, nil
}
