package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aid4sure/VeganEcosystem/internal/infrastructure/config"
	Logger "github.com/aid4sure/VeganEcosystem/pkg/logger"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// 领域事件主题（相对于 MQTT_TOPIC_PREFIX）
const (
	TopicReservationCreated   = "reservations/created"
	TopicReservationCancelled = "reservations/cancelled"
	TopicReservationCompleted = "reservations/completed"
	TopicGiftCardIssued       = "gift-cards/issued"
	TopicGiftCardRedeemed     = "gift-cards/redeemed"
)

// InterfaceEventPublisher 领域事件发布接口
type InterfaceEventPublisher interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
	Close()
}

// Event 发布到 MQTT 的消息体
type Event struct {
	ID         string      `json:"id"`
	Topic      string      `json:"topic"`
	OccurredAt time.Time   `json:"occurredAt"`
	Data       interface{} `json:"data"`
}

// NoopEventPublisher 未配置 broker 时丢弃事件
type NoopEventPublisher struct{}

func (NoopEventPublisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	return nil
}

func (NoopEventPublisher) Close() {}

// MQTTEventPublisher 通过 MQTT 发布领域事件
type MQTTEventPublisher struct {
	Client mqtt.Client
	Config *config.Config

	connectedMutex sync.RWMutex
	isConnected    bool
}

// NewEventPublisher 根据配置创建事件发布器，未配置 MQTT_BROKER_URL 时返回 NoopEventPublisher
func NewEventPublisher(cfg *config.Config) InterfaceEventPublisher {
	if cfg == nil || cfg.MQTTBrokerURL == "" {
		return NoopEventPublisher{}
	}

	publisher := &MQTTEventPublisher{Config: cfg}
	publisher.setupMQTTClient()
	publisher.Connect()
	return NewAsyncEventPublisher(publisher, EventQueueSize, EventPublishTimeout)
}

// 异步发布队列参数
const (
	EventQueueSize      = 256
	EventPublishTimeout = 3 * time.Second
)

type pendingEvent struct {
	topic   string
	payload interface{}
}

// AsyncEventPublisher 通过有界队列在后台发布事件，请求路径不等待 broker
type AsyncEventPublisher struct {
	next    InterfaceEventPublisher
	timeout time.Duration
	queue   chan pendingEvent
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewAsyncEventPublisher 创建异步发布器并启动后台发送协程
func NewAsyncEventPublisher(next InterfaceEventPublisher, size int, timeout time.Duration) *AsyncEventPublisher {
	if size <= 0 {
		size = EventQueueSize
	}
	if timeout <= 0 {
		timeout = EventPublishTimeout
	}
	p := &AsyncEventPublisher{
		next:    next,
		timeout: timeout,
		queue:   make(chan pendingEvent, size),
	}
	p.wg.Add(1)
	go p.run()
	return p
}

// Publish 将事件放入队列，队列已满或已关闭时返回错误而不阻塞
func (p *AsyncEventPublisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return fmt.Errorf("事件发布器已关闭")
	}

	select {
	case p.queue <- pendingEvent{topic: topic, payload: payload}:
		return nil
	default:
		return fmt.Errorf("事件队列已满，丢弃 %s", topic)
	}
}

func (p *AsyncEventPublisher) run() {
	defer p.wg.Done()
	for ev := range p.queue {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		if err := p.next.Publish(ctx, ev.topic, ev.payload); err != nil {
			Logger.Warning("发布事件失败 topic=%s: %v", ev.topic, err)
		}
		cancel()
	}
}

// Close 停止接收事件，发送完队列中剩余的事件后关闭下游发布器
func (p *AsyncEventPublisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	p.wg.Wait()
	p.next.Close()
}

// setupMQTTClient 设置MQTT客户端
func (p *MQTTEventPublisher) setupMQTTClient() {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(p.Config.MQTTBrokerURL)
	// 使用唯一的客户端ID，避免同一服务多实例冲突
	opts.SetClientID(fmt.Sprintf("%s-%s", p.Config.MQTTClientID, uuid.New().String()[:8]))
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetMaxReconnectInterval(30 * time.Second)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetCleanSession(true)

	if p.Config.MQTTUsername != "" {
		opts.SetUsername(p.Config.MQTTUsername)
		opts.SetPassword(p.Config.MQTTPassword)
	}

	opts.SetConnectionLostHandler(func(client mqtt.Client, err error) {
		Logger.Warning("[MQTT] 连接丢失: %v", err)
		p.setConnected(false)
	})
	opts.SetOnConnectHandler(func(client mqtt.Client) {
		Logger.Info("[MQTT] 成功连接到 %s", p.Config.MQTTBrokerURL)
		p.setConnected(true)
	})
	opts.SetReconnectingHandler(func(client mqtt.Client, opts *mqtt.ClientOptions) {
		Logger.Info("[MQTT] 正在尝试重连...")
	})

	p.Client = mqtt.NewClient(opts)
}

// Connect 发起连接，broker 暂不可达时由客户端在后台重试
func (p *MQTTEventPublisher) Connect() {
	Logger.Info("[MQTT] 正在连接到 %s...", p.Config.MQTTBrokerURL)
	token := p.Client.Connect()
	if token.WaitTimeout(5*time.Second) && token.Error() != nil {
		Logger.Warning("[MQTT] 连接失败，将在后台重试: %v", token.Error())
	}
}

func (p *MQTTEventPublisher) setConnected(connected bool) {
	p.connectedMutex.Lock()
	p.isConnected = connected
	p.connectedMutex.Unlock()
}

// Connected 返回当前连接状态
func (p *MQTTEventPublisher) Connected() bool {
	p.connectedMutex.RLock()
	defer p.connectedMutex.RUnlock()
	return p.isConnected && p.Client.IsConnectionOpen()
}

// Publish 序列化并发布事件
func (p *MQTTEventPublisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	if !p.Connected() {
		return fmt.Errorf("MQTT客户端未连接")
	}

	fullTopic := TopicWithPrefix(p.Config.MQTTTopicPrefix, topic)
	data, err := json.Marshal(Event{
		ID:         uuid.NewString(),
		Topic:      topic,
		OccurredAt: time.Now().UTC(),
		Data:       payload,
	})
	if err != nil {
		return fmt.Errorf("序列化消息失败: %w", err)
	}

	token := p.Client.Publish(fullTopic, byte(p.Config.MQTTQoS), false, data)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(3 * time.Second):
		return fmt.Errorf("发布消息超时")
	}
	if token.Error() != nil {
		return fmt.Errorf("发布消息失败: %w", token.Error())
	}
	return nil
}

// Close 断开连接
func (p *MQTTEventPublisher) Close() {
	if p.Client != nil && p.Client.IsConnected() {
		p.Client.Disconnect(250)
	}
}

// TopicWithPrefix 拼接主题前缀
func TopicWithPrefix(prefix, topic string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return topic
	}
	return prefix + "/" + topic
}

// publishEvent 事件发布失败只记录日志，不影响业务结果
func publishEvent(ctx context.Context, publisher InterfaceEventPublisher, topic string, payload interface{}) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, topic, payload); err != nil {
		Logger.Warning("发布事件失败 topic=%s: %v", topic, err)
	}
}
