package questions

import "errors"

// ErrNoText indicates the uploaded document yielded no extractable text.
var ErrNoText = errors.New("could not extract text from PDF")

// ErrNoQuestions indicates the pipeline produced zero question records.
// It distinguishes a bad document from a broken pipeline.
var ErrNoQuestions = errors.New("no questions found in document")
