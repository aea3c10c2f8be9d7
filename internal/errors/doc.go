// Package errors provides structured errors for the compendium extractor.
//
// Every error carries a Code, a message, an optional cause and free-form
// metadata. Codes decide two things for a batch run: whether the run aborts
// (see Code.Fatal) and which exit status the CLI returns (see ExitCode).
//
// # Basic Usage
//
//	err := errors.NotFoundf("input file %s not found", path)
//
//	err := errors.UnrecognizedHeaderf("no header grammar matched").
//	    WithMeta("snippet", snippet)
//
// Wrapping keeps the code of the wrapped error:
//
//	if err := output.WriteJSON(path, monsters); err != nil {
//	    return errors.Wrap(err, "failed to write monsters")
//	}
//
// Per-entity failures use CodeUnrecognizedHeader and CodePanic. They are
// recorded in the run report and never stop the batch.
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("input", cfg.Input, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
