package translator

import (
	"context"
	"sync"

	"github.com/richinsley/glscaffold/graphics"
	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator *gst.ShaderTranslator
	initErr    error
	once       sync.Once
)

// GetTranslator returns the shared translator, creating it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	once.Do(func() {
		translator, initErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, initErr
}

// TranslateFragment translates a WebGL2 fragment shader for api. It returns
// the translated source and the mapped name of every active uniform.
func TranslateFragment(source string, api graphics.API) (string, map[string]string, error) {
	t, err := GetTranslator()
	if err != nil {
		return "", nil, err
	}
	outputFormat := gst.OutputFormatGLSL410
	if api == graphics.OpenGLES {
		outputFormat = gst.OutputFormatESSL
	}
	out, err := t.TranslateShader(source, "fragment", gst.ShaderSpecWebGL2, outputFormat)
	if err != nil {
		return "", nil, err
	}
	names := make(map[string]string, len(out.Variables))
	for name, v := range out.Variables {
		names[name] = v.MappedName
	}
	return out.Code, names, nil
}
