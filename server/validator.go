package server

import (
	"othello/game"
	"othello/meta"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

// registerValidations adds the layout, side and depth tags to gin's validator.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		log.Warn().Msg("gin validator is not go-playground/validator, custom tags unavailable")
		return
	}
	if err := v.RegisterValidation("layout", validateLayout); err != nil {
		log.Fatal().Err(err).Msg("failed to register layout validation")
	}
	if err := v.RegisterValidation("side", validateSide); err != nil {
		log.Fatal().Err(err).Msg("failed to register side validation")
	}
	if err := v.RegisterValidation("depth", validateDepth); err != nil {
		log.Fatal().Err(err).Msg("failed to register depth validation")
	}
}

func validateLayout(fl validator.FieldLevel) bool {
	_, err := game.NewBoard(fl.Field().String())
	return err == nil && len(fl.Field().String()) == game.Playable
}

func validateSide(fl validator.FieldLevel) bool {
	_, err := game.ParseSide(fl.Field().String())
	return err == nil
}

// validateDepth accepts zero, which keeps the strategy's default.
func validateDepth(fl validator.FieldLevel) bool {
	depth := fl.Field().Int()
	return depth >= 0 && depth <= meta.SEARCH_DEPTH_LIMIT
}
