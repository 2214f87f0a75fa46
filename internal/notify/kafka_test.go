package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

type fakeReader struct {
	queue     []kafka.Message
	committed []kafka.Message
	cancel    context.CancelFunc
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	if len(f.queue) == 0 {
		f.cancel()
		<-ctx.Done()
		return kafka.Message{}, ctx.Err()
	}
	m := f.queue[0]
	f.queue = f.queue[1:]
	return m, nil
}

func (f *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	f.committed = append(f.committed, msgs...)
	return nil
}

func (f *fakeReader) Close() error { return nil }

func TestKafkaNotifier_PublishesEvent(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	w := &fakeWriter{}
	k := &KafkaNotifier{writer: w, now: func() time.Time { return now }}

	err := k.Send(context.Background(), Message{To: "asha@example.com", Subject: "Hi", HTML: "<p>x</p>", Kind: KindPaymentReceived})
	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "asha@example.com", string(w.msgs[0].Key))

	var ev EmailEvent
	require.NoError(t, sonic.Unmarshal(w.msgs[0].Value, &ev))
	assert.Equal(t, KindPaymentReceived, ev.Kind)
	assert.Equal(t, "Hi", ev.Subject)
	assert.True(t, now.Equal(ev.CreatedAt))
}

func TestKafkaNotifier_WriteError(t *testing.T) {
	k := &KafkaNotifier{writer: &fakeWriter{err: errors.New("broker down")}, now: time.Now}
	assert.EqualError(t, k.Send(context.Background(), Message{To: "a@b.c"}), "broker down")
}

func TestConsumer_DeliversAndCommits(t *testing.T) {
	good, err := sonic.Marshal(EmailEvent{Message: Message{To: "asha@example.com", Kind: KindApplicationApproved}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := &fakeReader{
		queue:  []kafka.Message{{Offset: 1, Value: []byte("not json")}, {Offset: 2, Value: good}},
		cancel: cancel,
	}
	n := &recordingNotifier{}
	c := &Consumer{reader: r, notifier: n}

	require.NoError(t, c.Run(ctx))

	require.Len(t, n.sent, 1)
	assert.Equal(t, "asha@example.com", n.sent[0].To)
	assert.Len(t, r.committed, 2)
}
