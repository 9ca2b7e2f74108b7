package renderer

import "github.com/ByLCY/sitelen/layout"

// Renderer 将选定的排版结果输出为最终文件，例如 SVG、PDF 或文本预览。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(doc *layout.Document) ([]byte, error)
}
