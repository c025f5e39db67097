package render

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
)

// Both shaders use //kage:unit pixels so dstPos is in destination pixels.

const radialShaderSrc = `//kage:unit pixels
package main

var Center vec2
var Radius float
var Tint vec4

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	d := distance(dstPos.xy, Center)
	t := clamp(1.0-d/Radius, 0.0, 1.0)
	return Tint * (t * t)
}
`

const conicShaderSrc = `//kage:unit pixels
package main

var Center vec2
var Angle float
var Tint vec4

func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {
	p := dstPos.xy - Center
	a := mod(atan2(p.y, p.x)-Angle, 6.2831853) / 6.2831853
	w := max(1.0-a*4.0, 0.0) + max(a*4.0-3.0, 0.0)
	return Tint * w
}
`

var (
	radialShader *ebiten.Shader
	conicShader  *ebiten.Shader
	radialFailed bool
	conicFailed  bool
)

func ensureShader(dst **ebiten.Shader, failed *bool, name, src string, log *slog.Logger) *ebiten.Shader {
	if *dst != nil || *failed {
		return *dst
	}
	s, err := ebiten.NewShader([]byte(src))
	if err != nil {
		*failed = true
		log.Warn("shader compile failed, using vector fallback", "shader", name, "error", err)
		return nil
	}
	*dst = s
	return s
}

func ensureRadialShader(log *slog.Logger) *ebiten.Shader {
	return ensureShader(&radialShader, &radialFailed, "radial", radialShaderSrc, log)
}

func ensureConicShader(log *slog.Logger) *ebiten.Shader {
	return ensureShader(&conicShader, &conicFailed, "conic", conicShaderSrc, log)
}
