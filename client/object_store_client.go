/*
 * @module client/object_store_client
 * @description 对象存储客户端，通过Dapr输出绑定访问S3兼容的存储桶
 * @architecture 客户端适配层
 * @documentReference ai_docs/sports_etl_design.md
 * @stateFlow 绑定调用 -> 响应解析 -> 结果返回
 * @rules 桶内对象键由调用方构造，客户端不感知键的业务含义
 * @dependencies github.com/dapr/go-sdk/client, encoding/json
 * @refs service/etl/loaders/object_store_loader.go, service/etl/quality/object_store_quality_checker.go
 */

package client

import (
	"context"
	"encoding/json"
	"fmt"

	dapr "github.com/dapr/go-sdk/client"
)

// ObjectStore 对象存储访问接口
type ObjectStore interface {
	// PutObject 写入对象
	PutObject(ctx context.Context, key string, data []byte) error
	// GetObject 读取对象内容
	GetObject(ctx context.Context, key string) ([]byte, error)
	// ListKeys 列出指定前缀下的全部对象键
	ListKeys(ctx context.Context, prefix string) ([]string, error)
}

// DaprObjectStoreClient 基于Dapr绑定的对象存储客户端
type DaprObjectStoreClient struct {
	client      dapr.Client
	bindingName string
}

// NewDaprObjectStoreClient 创建对象存储客户端，bindingName为Dapr组件中声明的S3绑定名称
func NewDaprObjectStoreClient(bindingName string) (*DaprObjectStoreClient, error) {
	daprClient, err := dapr.NewClient()
	if err != nil {
		return nil, fmt.Errorf("创建Dapr客户端失败: %w", err)
	}

	return &DaprObjectStoreClient{
		client:      daprClient,
		bindingName: bindingName,
	}, nil
}

// PutObject 通过create操作写入对象
func (c *DaprObjectStoreClient) PutObject(ctx context.Context, key string, data []byte) error {
	request := &dapr.InvokeBindingRequest{
		Name:      c.bindingName,
		Operation: "create",
		Data:      data,
		Metadata:  map[string]string{"key": key},
	}

	if err := c.client.InvokeOutputBinding(ctx, request); err != nil {
		return fmt.Errorf("写入对象失败 key=%s: %w", key, err)
	}
	return nil
}

// GetObject 通过get操作读取对象内容
func (c *DaprObjectStoreClient) GetObject(ctx context.Context, key string) ([]byte, error) {
	request := &dapr.InvokeBindingRequest{
		Name:      c.bindingName,
		Operation: "get",
		Metadata:  map[string]string{"key": key},
	}

	response, err := c.client.InvokeBinding(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("读取对象失败 key=%s: %w", key, err)
	}
	return response.Data, nil
}

// listResponse S3绑定list操作的响应结构
type listResponse struct {
	Contents []struct {
		Key string `json:"Key"`
	} `json:"Contents"`
}

// ListKeys 通过list操作列出前缀下的对象键
func (c *DaprObjectStoreClient) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"prefix":     prefix,
		"maxResults": 1000,
	})
	if err != nil {
		return nil, err
	}

	request := &dapr.InvokeBindingRequest{
		Name:      c.bindingName,
		Operation: "list",
		Data:      payload,
	}

	response, err := c.client.InvokeBinding(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("列出对象失败 prefix=%s: %w", prefix, err)
	}

	var listed listResponse
	if err := json.Unmarshal(response.Data, &listed); err != nil {
		return nil, fmt.Errorf("解析对象列表失败: %w", err)
	}

	keys := make([]string, 0, len(listed.Contents))
	for _, item := range listed.Contents {
		keys = append(keys, item.Key)
	}
	return keys, nil
}

// Close 释放Dapr客户端连接
func (c *DaprObjectStoreClient) Close() {
	c.client.Close()
}
