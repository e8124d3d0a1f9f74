package helper

import "github.com/gofiber/fiber/v2"

// FromFiberError mengubah error (biasanya *fiber.Error dari service/middleware)
// menjadi response JSON konsisten via helper.JsonError.
// Jika bukan *fiber.Error, fallback ke 500 dengan pesan asli.
func FromFiberError(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}
