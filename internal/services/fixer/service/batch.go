package service

import (
	"context"

	"fixred/internal/adapters/files"
	perr "fixred/internal/platform/errors"
	"fixred/internal/platform/logger"
	"fixred/internal/services/fixer/domain"
)

// FixFiles implements domain.FixerPort.
// Files are processed one at a time; an undecodable file is skipped,
// any I/O failure aborts the batch
func (f *Fixer) FixFiles(ctx context.Context, roots []string) (domain.BatchResult, error) {
	var res domain.BatchResult
	if f.List == nil || f.Store == nil {
		return res, perr.Internalf("fixer: file ports not wired")
	}

	err := f.List.Walk(ctx, roots, func(path string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		res.Files++
		fctx := logger.WithPath(ctx, path)
		log := logger.C(fctx)

		task, err := f.load(path)
		if err != nil {
			if perr.IsCode(err, perr.ErrorCodeDecode) {
				log.Warn().Err(err).Msg("skipping file that is not valid UTF-8")
				res.Skipped++
				return nil
			}
			return err
		}

		out, n, err := f.render(fctx, task.Text)
		if err != nil {
			return perr.WithOp(err, path)
		}
		if n == 0 {
			log.Debug().Msg("no links to fix")
			return nil
		}
		if err := f.Store.WriteAtomic(task.Path, out, task.Mode); err != nil {
			return err
		}
		res.Fixed += n
		res.Written++
		log.Info().Int("links", n).Msg("fixed")
		return nil
	})
	return res, err
}

func (f *Fixer) load(path string) (domain.FileTask, error) {
	raw, mode, err := f.Store.Read(path)
	if err != nil {
		return domain.FileTask{}, err
	}
	text, err := files.DecodeUTF8(raw)
	if err != nil {
		return domain.FileTask{}, perr.WithOp(err, path)
	}
	return domain.FileTask{Path: path, Text: text, Mode: mode}, nil
}
