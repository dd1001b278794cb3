package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"ldscript/internal/diag"
	"ldscript/internal/lexer"
	"ldscript/internal/source"
	"ldscript/internal/token"
	"ldscript/internal/trace"
)

// TokenizeFileResult содержит результат токенизации одного файла
type TokenizeFileResult struct {
	Path   string
	FileID source.FileID // empty virtual file when !Loaded
	Loaded bool
	Tokens []token.Token
	Bag    *diag.Bag
}

// TokenizeFiles токенизирует несколько скриптов параллельно. Результаты идут
// в порядке paths; ошибка чтения файла становится диагностикой, а не ошибкой.
func TokenizeFiles(ctx context.Context, paths []string, maxDiagnostics, jobs int) (*source.FileSet, []TokenizeFileResult, error) {
	return TokenizeFilesWithProgress(ctx, paths, maxDiagnostics, jobs, nil)
}

// TokenizeFilesWithProgress is TokenizeFiles reporting per-file status to sink.
func TokenizeFilesWithProgress(ctx context.Context, paths []string, maxDiagnostics, jobs int, sink ProgressSink) (*source.FileSet, []TokenizeFileResult, error) {
	// FileSet не потокобезопасен: загружаем всё заранее, воркеры только читают
	fileSet := source.NewFileSet()
	results := make([]TokenizeFileResult, len(paths))
	for i, path := range paths {
		results[i] = TokenizeFileResult{Path: path, Bag: diag.NewBag(maxDiagnostics)}
		id, err := fileSet.Load(path)
		if err != nil {
			// пустой виртуальный файл, чтобы у диагностики был валидный span
			id = fileSet.AddVirtual(path, nil)
			results[i].FileID = id
			results[i].Bag.Add(diag.NewError(diag.IOCannotOpen, source.Span{File: id}, "cannot open "+path+": "+err.Error()))
			emit(sink, Event{File: path, Status: StatusError})
			continue
		}
		results[i].FileID = id
		results[i].Loaded = true
		emit(sink, Event{File: path, Status: StatusQueued})
	}
	if len(paths) == 0 {
		return fileSet, results, nil
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "tokenize-files", 0)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	// индексы уникальны для каждой горутины, мьютекс не нужен
	for i := range results {
		if !results[i].Loaded {
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			r := &results[i]
			emit(sink, Event{File: r.Path, Status: StatusWorking})
			fspan := trace.Begin(tracer, trace.ScopeFile, r.Path, span.ID())
			r.Tokens, _ = lexer.Tokenize(fileSet.Get(r.FileID), diag.BagReporter{Bag: r.Bag})
			fspan.End("")
			status := StatusDone
			if r.Bag.HasErrors() {
				status = StatusError
			}
			emit(sink, Event{File: r.Path, Status: status, Tokens: len(r.Tokens)})
			return nil
		})
	}

	err := g.Wait()
	span.End("")
	if err != nil {
		return nil, nil, err
	}
	return fileSet, results, nil
}
