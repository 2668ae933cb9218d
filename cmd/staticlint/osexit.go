package main

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
	"golang.org/x/tools/go/types/typeutil"
)

// OsExitAnalyzer запрещает прямой вызов os.Exit в функции main пакета main.
// Завершение через os.Exit пропускает отложенные вызовы, в том числе синхронизацию логгера.
var OsExitAnalyzer = &analysis.Analyzer{
	Name:     "osexit",
	Doc:      "prohibits direct calls to os.Exit in main function of main package",
	Run:      runOsExitCheck,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
}

func runOsExitCheck(pass *analysis.Pass) (any, error) {
	if pass.Pkg.Name() != "main" {
		return nil, nil
	}

	// Сгенерированный go test файл с main вызывает os.Exit законно
	generated := make(map[*ast.File]bool)
	for _, f := range pass.Files {
		if ast.IsGenerated(f) {
			generated[f] = true
		}
	}

	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	insp.WithStack([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node, push bool, stack []ast.Node) bool {
		if !push {
			return true
		}
		if file, ok := stack[0].(*ast.File); ok && generated[file] {
			return false
		}
		if !insideMain(stack) {
			return true
		}

		call := n.(*ast.CallExpr)
		if isOsExit(pass.TypesInfo, call) {
			pass.Reportf(call.Pos(), "avoid direct os.Exit call in main function of main package")
		}
		return true
	})

	return nil, nil
}

// insideMain сообщает, находится ли узел непосредственно в теле функции main.
// Вызовы внутри литералов функций тоже учитываются.
func insideMain(stack []ast.Node) bool {
	for _, n := range stack {
		if fn, ok := n.(*ast.FuncDecl); ok {
			return fn.Recv == nil && fn.Name.Name == "main"
		}
	}
	return false
}

func isOsExit(info *types.Info, call *ast.CallExpr) bool {
	fn, ok := typeutil.Callee(info, call).(*types.Func)
	if !ok || fn.Pkg() == nil {
		return false
	}
	return fn.Pkg().Path() == "os" && fn.Name() == "Exit"
}
