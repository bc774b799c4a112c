package model

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type partialOnly struct{}

func (partialOnly) Info() Info { return Info{Name: "partial"} }

func (partialOnly) Generate(context.Context, Request) (<-chan Response, <-chan error) {
	out := make(chan Response, 2)
	errCh := make(chan error)
	out <- Response{Partial: true, Text: "ab"}
	out <- Response{Partial: true, Text: "cd"}
	close(out)
	close(errCh)
	return out, errCh
}

type silent struct{}

func (silent) Info() Info { return Info{Name: "silent"} }

func (silent) Generate(context.Context, Request) (<-chan Response, <-chan error) {
	out := make(chan Response)
	errCh := make(chan error)
	close(out)
	close(errCh)
	return out, errCh
}

func userRequest(text string) Request {
	return Request{Messages: []Message{{Role: RoleUser, Text: text}}}
}

func TestMockModel_CannedResponse(t *testing.T) {
	m := NewMockModel("mock-1", "mock")
	m.AddResponse("hello", "hi there")

	resp, err := Collect(context.Background(), m, userRequest("hello"))
	require.NoError(t, err)
	assert.Equal(t, "hi there", resp.Text)
	assert.Equal(t, "stop", resp.FinishReason)
	assert.Equal(t, 1, m.Calls())
	assert.Equal(t, Info{Name: "mock-1", Provider: "mock"}, m.Info())
}

func TestMockModel_DefaultResponse(t *testing.T) {
	m := NewMockModel("mock-1", "mock")

	resp, err := Collect(context.Background(), m, userRequest("anything"))
	require.NoError(t, err)
	assert.Equal(t, "Mock response to: anything", resp.Text)
}

func TestMockModel_Streaming(t *testing.T) {
	m := NewMockModel("mock-1", "mock")
	m.AddResponse("q", "xyz")

	req := userRequest("q")
	req.Stream = true
	respCh, errCh := m.Generate(context.Background(), req)

	var chunks []Response
	for r := range respCh {
		chunks = append(chunks, r)
	}
	for err := range errCh {
		require.NoError(t, err)
	}
	require.Len(t, chunks, 4)
	assert.True(t, chunks[0].Partial)
	assert.Equal(t, "x", chunks[0].Text)
	assert.False(t, chunks[3].Partial)
	assert.Equal(t, "xyz", chunks[3].Text)
}

func TestMockModel_Failure(t *testing.T) {
	m := NewMockModel("mock-1", "mock")
	boom := errors.New("boom")
	m.FailWith(boom)

	_, err := Collect(context.Background(), m, userRequest("q"))
	assert.ErrorIs(t, err, boom)

	m.FailWith(nil)
	_, err = Collect(context.Background(), m, userRequest("q"))
	assert.NoError(t, err)
}

func TestMockModel_NoMessages(t *testing.T) {
	_, err := Collect(context.Background(), NewMockModel("m", "mock"), Request{})
	assert.Error(t, err)
}

func TestCollect_ConcatenatesPartials(t *testing.T) {
	resp, err := Collect(context.Background(), partialOnly{}, Request{})
	require.NoError(t, err)
	assert.Equal(t, "abcd", resp.Text)
}

func TestCollect_NoOutput(t *testing.T) {
	_, err := Collect(context.Background(), silent{}, Request{})
	assert.ErrorIs(t, err, ErrNoOutput)
}
